package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"cardassist-be/internal/config"
	"cardassist-be/pkg/events"
	"cardassist-be/pkg/nats"

	"github.com/fatih/color"
)

// Tails the escalation queue. The API publishes tickets to a
// work-queue stream, so running more than one worker shares the load.
func main() {
	cfg := config.Load()

	color.Cyan("🚀 Escalation worker\n")

	sub, err := nats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Fatalf("Failed to connect to NATS: %v", err)
	}
	defer sub.Close()

	err = sub.Subscribe("events.escalation.created", "escalation-worker", func(ctx context.Context, event events.Event) error {
		data := event.Payload()

		priority := fmt.Sprintf("%v", data["priority"])
		header := color.New(color.FgWhite, color.Bold)
		switch priority {
		case "critical":
			header = color.New(color.FgRed, color.Bold)
		case "high":
			header = color.New(color.FgYellow, color.Bold)
		}

		header.Printf("\n[%v] %v\n", priority, data["ticket_id"])
		fmt.Printf("  case:     %v\n", data["case_number"])
		fmt.Printf("  type:     %v\n", data["escalation_type"])
		fmt.Printf("  team:     %v\n", data["assigned_to"])
		fmt.Printf("  sla:      %vh\n", data["sla_hours"])
		fmt.Printf("  user:     %v\n", data["user_id"])
		return nil
	})
	if err != nil {
		log.Fatalf("Failed to subscribe: %v", err)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	color.Yellow("\nShutting down")
}
