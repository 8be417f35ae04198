package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/FACorreiaa/go-itinerary-generator/internal/tripclient"
	"github.com/FACorreiaa/go-itinerary-generator/internal/types"
)

type rootOptions struct {
	server  string
	timeout time.Duration
	asJSON  bool
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "tripctl",
		Short:         "Generate and edit travel itineraries from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	defaultServer := os.Getenv("TRIPCTL_SERVER")
	if defaultServer == "" {
		defaultServer = "http://localhost:8000"
	}
	root.PersistentFlags().StringVar(&opts.server, "server", defaultServer, "itinerary API base URL (env TRIPCTL_SERVER)")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 2*time.Minute, "request timeout")
	root.PersistentFlags().BoolVar(&opts.asJSON, "json", false, "print raw JSON instead of the rendered plan")

	root.AddCommand(
		newGenerateCmd(opts),
		newCheckCmd(opts),
		newShowCmd(opts),
		newActivityCmd(opts),
	)
	return root
}

func (o *rootOptions) client() *tripclient.Client {
	return tripclient.New(o.server, o.timeout)
}

func newGenerateCmd(opts *rootOptions) *cobra.Command {
	var (
		req       types.TripRequest
		skipCheck bool
		noSession bool
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a new itinerary and keep it on the server for editing",
		RunE: func(cmd *cobra.Command, _ []string) error {
			req.Normalize()
			req.FollowStartDate()
			if err := req.Validate(time.Now().UTC()); err != nil {
				return errors.New(tripclient.FormMessage(err))
			}

			c := opts.client()
			if !skipCheck {
				valid, err := c.ValidateCity(cmd.Context(), req.City)
				if err != nil {
					return errors.New(tripclient.GenerationMessage(err))
				}
				if !valid {
					return errors.New(tripclient.MsgUnknownCity)
				}
			}

			if noSession {
				itinerary, err := c.Generate(cmd.Context(), req)
				if err != nil {
					return errors.New(tripclient.GenerationMessage(err))
				}
				if opts.asJSON {
					return writeJSON(cmd.OutOrStdout(), itinerary)
				}
				return tripclient.Render(cmd.OutOrStdout(), *itinerary)
			}

			session, err := c.CreateItinerary(cmd.Context(), req)
			if err != nil {
				return errors.New(tripclient.GenerationMessage(err))
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "itinerary id: %s\n", session.ID)
			return printSession(cmd.OutOrStdout(), opts, session)
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.City, "city", "", "destinations in visiting order, e.g. \"東京, 京都\"")
	f.StringVar(&req.StartDate, "start", "", "start date (YYYY-MM-DD)")
	f.StringVar(&req.EndDate, "end", "", "end date (YYYY-MM-DD), defaults to the start date")
	f.StringVar(&req.TripPurpose, "purpose", "", "trip purpose")
	f.StringVar(&req.Pace, "pace", "", "travel pace")
	f.StringVar(&req.Companions, "companions", "", "who you travel with")
	f.StringVar(&req.Budget, "budget", "", "budget range")
	f.StringVar(&req.Preferences, "preferences", "", "other preferences")
	f.StringVar(&req.ArrivalTime, "arrival", "", "first-day flight arrival time")
	f.StringVar(&req.DepartureTime, "departure", "", "last-day flight departure time")
	f.BoolVar(&skipCheck, "skip-check", false, "skip the destination check")
	f.BoolVar(&noSession, "no-session", false, "only print the plan, do not keep it on the server for editing")
	return cmd
}

func newCheckCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check <destinations>",
		Short: "Ask whether the destinations are known places",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			valid, err := opts.client().ValidateCity(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if opts.asJSON {
				return writeJSON(cmd.OutOrStdout(), types.CityCheckResponse{IsValid: valid})
			}
			if valid {
				fmt.Fprintln(cmd.OutOrStdout(), "valid")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "unknown destination")
			}
			return nil
		},
	}
}

func newShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <itinerary-id>",
		Short: "Print a stored itinerary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("%w: %q", types.ErrInvalidItineraryID, args[0])
			}
			session, err := opts.client().GetItinerary(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printSession(cmd.OutOrStdout(), opts, session)
		},
	}
}

func newActivityCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Add, update or delete activities. Day and activity numbers start at 1",
	}

	add := &cobra.Command{
		Use:   "add <itinerary-id> <day>",
		Short: "Append a placeholder activity to a day",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, day, _, err := parseActivityArgs(args)
			if err != nil {
				return err
			}
			session, err := opts.client().AddActivity(cmd.Context(), id, day)
			if err != nil {
				return err
			}
			return printSession(cmd.OutOrStdout(), opts, session)
		},
	}

	var edit types.Activity
	update := &cobra.Command{
		Use:   "update <itinerary-id> <day> <activity>",
		Short: "Change the time, title or description of an activity; omitted fields keep their value",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, day, idx, err := parseActivityArgs(args)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if !flags.Changed("time") && !flags.Changed("title") && !flags.Changed("description") {
				return errors.New("nothing to update: pass --time, --title or --description")
			}

			c := opts.client()
			current, err := c.GetItinerary(cmd.Context(), id)
			if err != nil {
				return err
			}
			activity, err := activityAt(current.Itinerary, day, idx)
			if err != nil {
				return err
			}
			if flags.Changed("time") {
				activity.Time = edit.Time
			}
			if flags.Changed("title") {
				activity.Title = edit.Title
			}
			if flags.Changed("description") {
				activity.Description = edit.Description
			}

			session, err := c.UpdateActivity(cmd.Context(), id, day, idx, activity)
			if err != nil {
				return err
			}
			return printSession(cmd.OutOrStdout(), opts, session)
		},
	}
	update.Flags().StringVar(&edit.Time, "time", "", "suggested time")
	update.Flags().StringVar(&edit.Title, "title", "", "activity title")
	update.Flags().StringVar(&edit.Description, "description", "", "activity description")

	del := &cobra.Command{
		Use:   "delete <itinerary-id> <day> <activity>",
		Short: "Remove an activity",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, day, idx, err := parseActivityArgs(args)
			if err != nil {
				return err
			}
			session, err := opts.client().DeleteActivity(cmd.Context(), id, day, idx)
			if err != nil {
				return err
			}
			return printSession(cmd.OutOrStdout(), opts, session)
		},
	}

	cmd.AddCommand(add, update, del)
	return cmd
}

// parseActivityArgs converts the 1-based day and activity numbers to API indexes.
func parseActivityArgs(args []string) (uuid.UUID, int, int, error) {
	id, err := uuid.Parse(args[0])
	if err != nil {
		return uuid.Nil, 0, 0, fmt.Errorf("%w: %q", types.ErrInvalidItineraryID, args[0])
	}
	positions := make([]int, 2)
	for i, raw := range args[1:] {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return uuid.Nil, 0, 0, fmt.Errorf("%w: %q (numbers start at 1)", types.ErrInvalidIndex, raw)
		}
		positions[i] = n - 1
	}
	return id, positions[0], positions[1], nil
}

// activityAt returns the stored activity at the API indexes, reporting 1-based numbers on failure.
func activityAt(it types.Itinerary, day, idx int) (types.Activity, error) {
	if day >= len(it.DailyPlans) {
		return types.Activity{}, fmt.Errorf("%w: day %d of %d", types.ErrDayNotFound, day+1, len(it.DailyPlans))
	}
	acts := it.DailyPlans[day].Activities
	if idx >= len(acts) {
		return types.Activity{}, fmt.Errorf("%w: activity %d of %d on day %d", types.ErrActivityNotFound, idx+1, len(acts), day+1)
	}
	return acts[idx], nil
}

func printSession(w io.Writer, opts *rootOptions, session *types.ItinerarySession) error {
	if opts.asJSON {
		return writeJSON(w, session)
	}
	return tripclient.Render(w, session.Itinerary)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
