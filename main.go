package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"playerpath_server/bus"
	"playerpath_server/config"
	"playerpath_server/models"
	"playerpath_server/routes"
	"playerpath_server/services"
	"playerpath_server/socket"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize DynamoDB client and service
	log.Println("Initializing DynamoDB client...")
	dynamoClient := services.InitializeDynamoDBClient(cfg.AWSRegion)
	dynamoService := &services.DynamoService{Client: dynamoClient}
	log.Println("DynamoDB client initialized.")

	// Connect to the event bus
	log.Printf("Connecting to NATS at %s...\n", cfg.NATSURL)
	eventBus, err := bus.New(cfg.NATSURL)
	if err != nil {
		log.Fatalf("Failed to connect to NATS: %v", err)
	}
	defer eventBus.Close()

	if err := eventBus.EnsureStream("INVITATIONS", services.InvitationCreatedSubject); err != nil {
		log.Fatalf("Failed to ensure invitations stream: %v", err)
	}

	// Initialize Services
	invitationService := &services.InvitationService{Dynamo: dynamoService, Bus: eventBus}
	templateService := services.NewTemplateService(cfg.Links.AppScheme, cfg.Links.WebDomain)
	emailService := services.NewEmailService(cfg.Email.SendGridAPIKey, cfg.Email.FromAddress, cfg.Email.FromName)
	if !emailService.IsConfigured() {
		log.Println("SENDGRID_API_KEY is not set; invitation emails will fail until it is configured")
	}
	jwtService := services.NewJWTService(cfg.JWTSecret, cfg.JWTAccessExpiry)
	clipService := &services.ClipService{Client: services.InitializeS3Client(cfg.AWSRegion), Bucket: cfg.S3Bucket}

	// Socket.IO server for live invitation status updates
	socketServer := socket.NewSocketServer()
	go func() {
		if err := socketServer.Serve(); err != nil {
			log.Printf("Socket server error: %v", err)
		}
	}()
	defer socketServer.Close()

	notifier := &services.NotifierService{
		Store:       invitationService,
		Dispatcher:  emailService,
		Templates:   templateService,
		Broadcaster: socket.NewStatusHub(socketServer),
	}

	// Start the invitation-created consumer before accepting requests
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	subscription, err := eventBus.Subscribe(ctx, services.InvitationCreatedSubject, "invitation-notifier", func(ctx context.Context, data []byte) error {
		var inv models.Invitation
		if err := json.Unmarshal(data, &inv); err != nil {
			// A malformed payload will never parse on redelivery either; ack it.
			log.Printf("Dropping malformed invitation event: %v", err)
			return nil
		}
		return notifier.HandleInvitationCreated(ctx, inv)
	})
	if err != nil {
		log.Fatalf("Failed to subscribe to invitation events: %v", err)
	}
	defer subscription.Close()
	log.Println("Invitation notifier subscribed.")

	// Initialize the router
	r := mux.NewRouter()

	// Register a welcome route
	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "Welcome to PlayerPath")
	}).Methods("GET")

	// Register a health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		response := map[string]string{"status": "healthy"}
		json.NewEncoder(w).Encode(response)
	}).Methods("GET")

	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.Handle("/socket.io/", socketServer)

	// Register routes
	routes.RegisterInvitationRoutes(r, invitationService, notifier, jwtService)
	routes.RegisterClipRoutes(r, clipService, jwtService)

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // Adjust for specific domains if needed
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	// Start the HTTP server
	log.Printf("Starting server on port %s...\n", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, corsHandler))
}
