package main

import (
	"context"
	"strings"
	"testing"

	"github.com/veselicnik/srecke-backend/internal/repositories/memory"
	"github.com/veselicnik/srecke-backend/internal/services"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{"prizes", []string{"-kind", "prizes", "-file", "p.csv"}, false},
		{"tickets dry run", []string{"-kind", "tickets", "-file", "t.csv", "-dry-run"}, false},
		{"unknown kind", []string{"-kind", "draws", "-file", "d.csv"}, true},
		{"missing file", []string{"-kind", "prizes"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseFlags(tt.args)
			if (err != nil) != tt.wantErr {
				t.Errorf("parseFlags(%v) error = %v, wantErr %v", tt.args, err, tt.wantErr)
			}
		})
	}
}

func TestImportPrizes(t *testing.T) {
	csvData := `name,probability,eventId
Kolo,0.1,E1
Torta,1.5,E1
,0.3,E1
Majica,abc,E1
Skiro,0.9
Dežnik, 0.25 ,E2
`
	repo := memory.NewPrizeRepository()
	res, err := importPrizes(context.Background(), strings.NewReader(csvData), services.NewPrizeService(repo))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if res.Imported != 2 || res.Skipped != 4 {
		t.Fatalf("Expected 2 imported and 4 skipped, got %+v", res)
	}

	prizes, _ := repo.FindAll(context.Background())
	if prizes[0].Name != "Kolo" || prizes[1].EventID != "E2" || prizes[1].Probability != 0.25 {
		t.Errorf("Unexpected prizes: %+v %+v", prizes[0], prizes[1])
	}
}

func TestImportTickets(t *testing.T) {
	csvData := "userId,eventId\nu1,E1\nu2,E1\nu3,\n"
	repo := memory.NewTicketRepository()
	res, err := importTickets(context.Background(), strings.NewReader(csvData), services.NewTicketService(repo, nil))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if res.Imported != 2 || res.Skipped != 1 {
		t.Fatalf("Expected 2 imported and 1 skipped, got %+v", res)
	}
}

func TestImportEmptyFile(t *testing.T) {
	_, err := importTickets(context.Background(), strings.NewReader(""), services.NewTicketService(memory.NewTicketRepository(), nil))
	if err == nil {
		t.Fatal("Expected an error for an empty file")
	}
}
