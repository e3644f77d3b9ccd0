package template_test

import (
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"

	"github.com/jonny/ranobe-bot/internal/adapter/outbound/discord/template"
	"github.com/jonny/ranobe-bot/internal/domain/model"
)

func selectMenu(t *testing.T, row discordgo.ActionsRow) discordgo.SelectMenu {
	t.Helper()
	if len(row.Components) != 1 {
		t.Fatalf("row has %d components, want 1", len(row.Components))
	}
	menu, ok := row.Components[0].(discordgo.SelectMenu)
	if !ok {
		t.Fatalf("expected SelectMenu, got %T", row.Components[0])
	}
	return menu
}

func TestBuildBookSelect_ValuesAreIDs(t *testing.T) {
	books := []model.Book{
		{ID: 10, Title: "Ten", Lang: "ja"},
		{ID: 11, Title: "Eleven", Lang: "en"},
		{ID: 12, Title: "Twelve"},
	}

	menu := selectMenu(t, template.BuildBookSelect(books))

	if menu.CustomID != template.CustomIDSelectBook {
		t.Errorf("CustomID = %q", menu.CustomID)
	}
	if menu.MenuType != discordgo.StringSelectMenu {
		t.Errorf("MenuType = %v", menu.MenuType)
	}
	if len(menu.Options) != 3 {
		t.Fatalf("options = %d, want 3", len(menu.Options))
	}
	for i, want := range []string{"10", "11", "12"} {
		if menu.Options[i].Value != want {
			t.Errorf("option %d value = %q, want %q", i, menu.Options[i].Value, want)
		}
	}
	if menu.Options[0].Description != "Language: JA" {
		t.Errorf("description = %q", menu.Options[0].Description)
	}
	if menu.Options[2].Description != "Language: ?" {
		t.Errorf("description = %q", menu.Options[2].Description)
	}
}

func TestBuildBookSelect_TruncatesLabels(t *testing.T) {
	long := strings.Repeat("長", 150)
	menu := selectMenu(t, template.BuildBookSelect([]model.Book{{ID: 1, Title: long}, {ID: 2}}))

	if n := len([]rune(menu.Options[0].Label)); n != 100 {
		t.Errorf("label runes = %d, want 100", n)
	}
	if menu.Options[1].Label != "Unknown Title" {
		t.Errorf("label = %q", menu.Options[1].Label)
	}
}
