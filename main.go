package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"

	"skillswap_server/routes"
	"skillswap_server/services"
	"skillswap_server/socket"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	// Initialize DynamoDB client and the shared access layer
	log.Println("Initializing DynamoDB client...")
	dynamoClient := services.InitializeDynamoDBClient()
	dynamoService := &services.DynamoService{Client: dynamoClient}
	log.Println("DynamoDB client initialized.")

	// Storage collaborators
	directory := &services.DynamoPersonDirectory{Dynamo: dynamoService}
	interests := &services.DynamoInterestStore{Dynamo: dynamoService}
	meetings := &services.DynamoMeetingStore{Dynamo: dynamoService}
	chats := &services.DynamoChatStore{Dynamo: dynamoService}

	// Core services
	personService := services.NewPersonService(directory, services.SystemClock, nil)
	interestService := &services.InterestService{Directory: directory, Interests: interests, Clock: services.SystemClock}
	matchService := &services.MatchService{Directory: directory, Interests: interests}
	meetingService := &services.MeetingService{Directory: directory, Meetings: meetings, Ledger: interestService, Clock: services.SystemClock}
	chatService := &services.ChatService{Directory: directory, Ledger: interestService, Chats: chats, Clock: services.SystemClock}

	// Simulated counterparts reply through the chat service with cancelable
	// timers. The scheduler lives for the whole process; pending replies die
	// with it.
	scheduler := services.NewTimerScheduler()
	simulator := services.NewSimulatorService(directory, chatService, scheduler, nil)
	chatService.Simulator = simulator

	s3Service := services.InitializeS3Service()

	// Socket.IO hub for relationship-room broadcasts
	socketServer := socket.NewSocketServer()

	// Set up the server port
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Using server port: %s\n", port)

	// Initialize the router
	r := mux.NewRouter()

	// Register a welcome route
	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "Welcome to SkillSwap")
	}).Methods("GET")

	// Register a health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		response := map[string]string{"status": "healthy"}
		json.NewEncoder(w).Encode(response)
	}).Methods("GET")

	// Register routes
	routes.RegisterPersonRoutes(r, personService)
	routes.RegisterMatchRoutes(r, matchService)
	routes.RegisterInterestRoutes(r, interestService)
	routes.RegisterMeetingRoutes(r, meetingService)
	routes.RegisterChatRoutes(r, chatService, socketServer)
	routes.RegisterS3Routes(r, s3Service)

	// Mount the socket hub
	r.Handle("/socket.io/", socketServer)

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // Adjust for specific domains if needed
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	// Start the HTTP server
	log.Printf("Starting server on port %s...\n", port)
	log.Fatal(http.ListenAndServe(":"+port, corsHandler))
}
