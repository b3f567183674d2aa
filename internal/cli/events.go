package cli

import (
	"context"
	"encoding/json"
	"errors"

	"ai-docstruct-be/pkg/events"
	pktNats "ai-docstruct-be/pkg/nats"

	"github.com/spf13/cobra"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Follow pipeline events mirrored to NATS",
	Long:  `Prints one JSON line per event published by a running server. Requires NATS_URL.`,
	Args:  cobra.NoArgs,
	RunE:  runEvents,
}

var (
	eventsSubject string
	eventsDurable string
)

func init() {
	eventsCmd.Flags().StringVar(&eventsSubject, "subject", "events.>", "Subject filter")
	eventsCmd.Flags().StringVar(&eventsDurable, "durable", "", "Durable consumer name (empty for ephemeral)")
	rootCmd.AddCommand(eventsCmd)
}

func runEvents(cmd *cobra.Command, args []string) error {
	if cfg.App.NatsURL == "" {
		return errors.New("NATS_URL is not set")
	}

	sub, err := pktNats.NewSubscriber(cfg.App.NatsURL, sysLog)
	if err != nil {
		return err
	}
	defer sub.Close()

	enc := json.NewEncoder(cmd.OutOrStdout())
	ctx := cmd.Context()
	err = sub.Subscribe(ctx, eventsSubject, eventsDurable, func(_ context.Context, e events.Event) error {
		return enc.Encode(map[string]interface{}{
			"type":        e.EventType(),
			"occurred_at": e.Timestamp(),
			"data":        e.Payload(),
		})
	})
	if err != nil {
		return err
	}

	<-ctx.Done()
	return nil
}
