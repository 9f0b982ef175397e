package importer

import (
	"context"
	"reflect"
	"testing"

	"harborcrm/pkg/models"

	"github.com/google/uuid"
)

func TestParseSocialAccounts(t *testing.T) {
	got := parseSocialAccounts("twitter: janedoe, instagram:jane.doe, malformed, :nohandle")
	want := []socialAccount{
		{Platform: "twitter", Handle: "janedoe"},
		{Platform: "instagram", Handle: "jane.doe"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("parseSocialAccounts = %v, want %v", got, want)
	}
}

func TestBuildAddresses(t *testing.T) {
	stores := newFakeStores()
	stores.lookups.states = []models.State{{Name: "Illinois", Abbreviation: "IL"}}
	stores.lookups.states[0].ID = uuid.New()
	processor := NewBatchProcessor(stores)
	ctx := context.Background()

	t.Run("discrete fields", func(t *testing.T) {
		addrs, err := processor.buildAddresses(ctx, stores, map[string]string{
			"streetAddress": "123 Main St",
			"unit":          "Apt 4",
			"city":          "Springfield",
			"state":         "IL",
			"zipCode":       "62701",
		})
		if err != nil {
			t.Fatal(err)
		}
		if len(addrs) != 1 {
			t.Fatalf("got %d addresses, want 1", len(addrs))
		}
		addr := addrs[0]
		if addr.Street != "123 Main St" || addr.City != "Springfield" || addr.Unit != "Apt 4" {
			t.Errorf("unexpected address %+v", addr)
		}
		if addr.StateID == nil {
			t.Error("state abbreviation not resolved")
		}
		if addr.ZipCodeID == nil {
			t.Error("zip code not created on miss")
		}
		// The zip was created once and is found on the next pass
		if len(stores.lookups.zips) != 1 {
			t.Fatalf("zips = %d, want 1", len(stores.lookups.zips))
		}
	})

	t.Run("street without city is skipped", func(t *testing.T) {
		addrs, err := processor.buildAddresses(ctx, stores, map[string]string{
			"streetAddress": "123 Main St",
		})
		if err != nil {
			t.Fatal(err)
		}
		if len(addrs) != 0 {
			t.Errorf("partial discrete address should be skipped, got %v", addrs)
		}
	})

	t.Run("combined shorthand splits into street and city pairs", func(t *testing.T) {
		addrs, err := processor.buildAddresses(ctx, stores, map[string]string{
			"addresses": "123 Main St, Springfield, 9 Oak Ave, Shelbyville",
		})
		if err != nil {
			t.Fatal(err)
		}
		if len(addrs) != 2 {
			t.Fatalf("got %d addresses, want 2", len(addrs))
		}
		if addrs[0].Street != "123 Main St" || addrs[0].City != "Springfield" {
			t.Errorf("first pair = %+v", addrs[0])
		}
		if addrs[1].Street != "9 Oak Ave" || addrs[1].City != "Shelbyville" {
			t.Errorf("second pair = %+v", addrs[1])
		}
	})

	t.Run("unknown state is dropped silently", func(t *testing.T) {
		addrs, err := processor.buildAddresses(ctx, stores, map[string]string{
			"streetAddress": "1 Rue de Paris",
			"city":          "Paris",
			"state":         "Île-de-France",
		})
		if err != nil {
			t.Fatal(err)
		}
		if len(addrs) != 1 {
			t.Fatalf("got %d addresses, want 1", len(addrs))
		}
		if addrs[0].StateID != nil {
			t.Error("unknown state should leave StateID nil")
		}
	})
}
