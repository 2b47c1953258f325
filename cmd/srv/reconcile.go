package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/podlift/backend/internal/domain/outcome"
	"github.com/podlift/backend/internal/repository"
	"github.com/urfave/cli/v2"
)

func (s *srv) startReconcile(cctx *cli.Context) error {
	s.loadDatabase()
	repo := repository.NewReconciliationRepository()

	if id := cctx.String("resolve"); id != "" {
		if err := repo.Resolve(s.ctx, id, time.Now()); err != nil {
			return fmt.Errorf("cannot resolve %s: %w", id, err)
		}

		fmt.Printf("Resolved %s\n", id)
		return nil
	}

	records, err := repo.GetUnresolved(s.ctx, cctx.Int("limit"))
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCREATED\tUSER\tOPERATION\tSTEP\tHINT")
	for _, r := range records {
		hint := "payload is not readable"
		raw := map[string]any{}
		if err := json.Unmarshal(r.Payload, &raw); err == nil {
			if payload, err := outcome.DecodePayload(raw); err == nil {
				hint = payload.Hint()
			}
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.CreatedAt.UTC().Format(time.RFC3339), r.UserID, r.Operation, r.StepReached, hint)
	}

	return w.Flush()
}
