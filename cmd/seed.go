package cmd

import (
	"context"
	"fmt"

	"github.com/horsepowerelectrical/contact-api/internal/logger"
	"github.com/horsepowerelectrical/contact-api/internal/model"
	"github.com/horsepowerelectrical/contact-api/internal/repository"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed an empty store with demo submissions",
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, closeStore, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer closeStore()

		n, err := seedSubmissions(context.Background(), repo)
		if err != nil {
			return err
		}
		if n == 0 {
			logger.Log.Info("store is not empty, seed skipped")
			return nil
		}
		logger.Log.Info("seed completed", zap.Int("inserted", n))
		return nil
	},
}

func strptr(s string) *string { return &s }

// demoSubmissions covers each service offered on the contact form.
var demoSubmissions = []model.NewSubmission{
	{
		Name:    "Dana Whitfield",
		Email:   "dana.whitfield@example.com",
		Phone:   strptr("(555) 201-4477"),
		Service: "Electrical Installation",
		Message: "We are finishing a basement and need new circuits and outlets run.",
		Status:  model.StatusNew,
	},
	{
		Name:    "Marcus Bell",
		Email:   "marcus.bell@example.com",
		Service: "Repairs & Maintenance",
		Message: "Two outlets in the kitchen stopped working after a storm.",
		Status:  model.StatusRead,
	},
	{
		Name:    "Priya Natarajan",
		Email:   "priya.n@example.com",
		Phone:   strptr("(555) 310-9012"),
		Service: "Lighting Solutions",
		Message: "Looking for a quote on recessed lighting in the living room.",
		Status:  model.StatusNew,
	},
	{
		Name:    "Tom Alvarez",
		Email:   "tom.alvarez@example.com",
		Service: "Safety Inspection",
		Message: "Buying a 1960s house and want the wiring inspected before closing.",
		Status:  model.StatusProcessed,
	},
	{
		Name:    "Grace Kim",
		Email:   "grace.kim@example.com",
		Phone:   strptr("(555) 448-6630"),
		Service: "Panel Upgrade",
		Message: "Adding an EV charger and the 100A panel needs to go to 200A.",
		Status:  model.StatusNew,
	},
	{
		Name:    "Leo Fischer",
		Email:   "leo.fischer@example.com",
		Service: "Emergency Service",
		Message: "Burning smell from the breaker box, power is off for now.",
		Status:  model.StatusRead,
	},
}

// seedSubmissions inserts the demo rows only into an empty store and reports
// how many were written.
func seedSubmissions(ctx context.Context, repo repository.SubmissionsRepository) (int, error) {
	total, err := repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count submissions: %w", err)
	}
	if total > 0 {
		return 0, nil
	}

	for i, s := range demoSubmissions {
		if _, err := repo.Insert(ctx, s); err != nil {
			return i, fmt.Errorf("insert submission %q: %w", s.Name, err)
		}
	}
	return len(demoSubmissions), nil
}
