package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/intermediaal/e-table-reservation/internal/domain"
	"github.com/intermediaal/e-table-reservation/internal/upstream"
	"github.com/intermediaal/e-table-reservation/internal/wizard"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: reserve [zones|slots|book|view|cancel] [flags]")
		os.Exit(1)
	}

	_ = godotenv.Load()

	base := os.Getenv("UPSTREAM_BASE_URL")
	if base == "" {
		base = "http://localhost:3030/api"
	}
	slug := os.Getenv("BUSINESS_SLUG")
	if slug == "" {
		slug = "intermedia"
	}

	client := upstream.New(base)

	cmd := os.Args[1]
	switch cmd {
	case "zones":
		zonesCmd(client, slug)
	case "slots":
		slotsCmd(client, slug, os.Args[2:])
	case "book":
		bookCmd(client, slug, os.Args[2:])
	case "view":
		viewCmd(client, os.Args[2:])
	case "cancel":
		cancelCmd(client, os.Args[2:])
	default:
		fmt.Println("unknown command:", cmd)
		os.Exit(1)
	}
}

func newCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 15*time.Second)
}

func zonesCmd(client *upstream.Client, slug string) {
	ctx, cancel := newCtx()
	defer cancel()

	zones, err := client.Areas(ctx, slug)
	if err != nil {
		log.Fatal(upstream.DisplayMessage(err))
	}

	fmt.Printf("Zones at %s:\n", slug)
	for _, z := range zones {
		fmt.Printf("  %d: %s\n", z.ID, z.Name)
	}
}

func slotsCmd(client *upstream.Client, slug string, args []string) {
	fs := flag.NewFlagSet("slots", flag.ExitOnError)
	date := fs.String("date", "", "date (YYYY-MM-DD)")
	guests := fs.Int("guests", 2, "party size")
	_ = fs.Parse(args)

	if *date == "" {
		log.Fatal("date is required")
	}

	ctx, cancel := newCtx()
	defer cancel()

	slots, err := client.Slots(ctx, slug, *date, *guests)
	if err != nil {
		log.Fatal(upstream.DisplayMessage(err))
	}

	if len(slots) == 0 {
		fmt.Printf("No tables for %d on %s.\n", *guests, *date)
		return
	}
	fmt.Printf("Available times on %s for %d:\n", *date, *guests)
	for _, s := range slots {
		fmt.Printf("  %s (zones %v)\n", s.Time, s.AvailableZoneIDs)
	}
}

type clientFetcher struct {
	client *upstream.Client
	slug   string
}

func (f clientFetcher) Slots(ctx context.Context, date string, guests int) ([]domain.Slot, error) {
	return f.client.Slots(ctx, f.slug, date, guests)
}

type clientSubmitter struct {
	client *upstream.Client
}

func (s clientSubmitter) Create(ctx context.Context, req domain.ReservationRequest) (*domain.CreatedReservation, error) {
	return s.client.CreateReservation(ctx, req)
}

// bookCmd walks the wizard through every step with the supplied values, so
// all gating and availability reconciliation applies exactly as in the
// interactive flow.
func bookCmd(client *upstream.Client, slug string, args []string) {
	fs := flag.NewFlagSet("book", flag.ExitOnError)
	date := fs.String("date", "", "date (YYYY-MM-DD)")
	timeStr := fs.String("time", "", "time (HH:MM)")
	guests := fs.Int("guests", 2, "party size")
	zone := fs.Int64("zone", 0, "zone id (0 = any zone)")
	name := fs.String("name", "", "full name")
	email := fs.String("email", "", "email")
	phone := fs.String("phone", "", "phone")
	requests := fs.String("requests", "", "special requests")
	_ = fs.Parse(args)

	if *date == "" || *timeStr == "" || *name == "" || *email == "" || *phone == "" {
		log.Fatal("date, time, name, email and phone are required")
	}

	ctx, cancel := newCtx()
	defer cancel()

	maxParty := 0
	if info, err := client.BookingInfo(ctx, slug); err == nil {
		maxParty = info.MaxPartySize
	}

	w := wizard.New(slug, clientFetcher{client: client, slug: slug}, clientSubmitter{client: client},
		wizard.WithMaxPartySize(maxParty))
	defer w.Close()

	if err := w.SetGuests(*guests); err != nil {
		log.Fatal(err)
	}
	if err := w.SetDate(*date); err != nil {
		log.Fatal(err)
	}
	if err := w.RefreshNow(ctx); err != nil {
		log.Fatal(upstream.DisplayMessage(err))
	}
	if *zone != 0 {
		if err := w.SelectZone(zone); err != nil {
			log.Fatalf("zone %d: %v", *zone, err)
		}
	}
	if err := w.SelectTime(*timeStr); err != nil {
		log.Fatalf("time %s: %v", *timeStr, err)
	}
	w.SetContact(*name, *email, *phone, *requests)

	created, err := w.Submit(ctx)
	if err != nil {
		log.Fatal(upstream.DisplayMessage(err))
	}

	fmt.Printf("Reservation created. ID: %d | Status: %s\n", created.ID, created.Status)
	fmt.Printf("View or cancel with token: %s\n", created.ViewToken)
}

func viewCmd(client *upstream.Client, args []string) {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	tok := fs.String("token", "", "view token")
	_ = fs.Parse(args)

	if *tok == "" {
		log.Fatal("token is required")
	}

	ctx, cancel := newCtx()
	defer cancel()

	r, err := client.Reservation(ctx, *tok)
	if err != nil {
		if upstream.IsNotFound(err) {
			fmt.Println("Reservation not found.")
			os.Exit(1)
		}
		log.Fatal(upstream.DisplayMessage(err))
	}

	fmt.Printf("Reservation #%d | %s\n", r.ID, r.Status)
	fmt.Printf("  %s at %s, %d guests\n", r.Date, r.StartTime, r.Guests)
	fmt.Printf("  %s | %s | %s\n", r.CustomerName, r.CustomerEmail, r.CustomerPhone)
	if r.SpecialRequest != "" {
		fmt.Printf("  Requests: %s\n", r.SpecialRequest)
	}
}

func cancelCmd(client *upstream.Client, args []string) {
	fs := flag.NewFlagSet("cancel", flag.ExitOnError)
	tok := fs.String("token", "", "view token")
	_ = fs.Parse(args)

	if *tok == "" {
		log.Fatal("token is required")
	}

	ctx, cancel := newCtx()
	defer cancel()

	if err := client.CancelReservation(ctx, *tok); err != nil {
		log.Fatal(upstream.DisplayMessage(err))
	}
	fmt.Println("Your reservation has been successfully cancelled.")
}
