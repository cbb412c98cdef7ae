package providers

import (
	"strings"
	"testing"

	"github.com/youssefhoussam/pitch-service/internal/types"
)

func TestBuildPitchPrompt(t *testing.T) {
	input := GenerateInput{
		Problem:   "les restaurants gaspillent leurs invendus",
		Solution:  "une marketplace d'invendus à prix réduit",
		Target:    "citadins pressés",
		Advantage: "réseau de 500 restaurants partenaires",
		Startup: types.StartupProfile{
			Name:        "SaveMyPlate",
			Sector:      "FoodTech",
			Description: "Lutte contre le gaspillage alimentaire",
		},
	}

	t.Run("includes all inputs", func(t *testing.T) {
		prompt := buildPitchPrompt(input)

		for _, want := range []string{
			"SaveMyPlate",
			"FoodTech",
			"Lutte contre le gaspillage alimentaire",
			"les restaurants gaspillent leurs invendus",
			"une marketplace d'invendus à prix réduit",
			"citadins pressés",
			"réseau de 500 restaurants partenaires",
		} {
			if !strings.Contains(prompt, want) {
				t.Errorf("prompt missing %q", want)
			}
		}
	})

	t.Run("omits empty description", func(t *testing.T) {
		in := input
		in.Startup.Description = ""

		prompt := buildPitchPrompt(in)
		if strings.Contains(prompt, "- Description :") {
			t.Error("prompt should omit empty description line")
		}
	})

	t.Run("type-specific instructions", func(t *testing.T) {
		tests := []struct {
			pitchType types.PitchType
			want      string
		}{
			{types.PitchTypeElevator, "elevator pitch professionnel"},
			{types.PitchTypeDeck, "structure de pitch deck professionnelle"},
			{types.PitchTypeValueProp, "proposition de valeur claire et concise"},
			{"", "elevator pitch professionnel"}, // unknown types fall back to elevator
		}

		for _, tt := range tests {
			in := input
			in.Type = tt.pitchType

			prompt := buildPitchPrompt(in)
			if !strings.Contains(prompt, tt.want) {
				t.Errorf("type %q: prompt missing %q", tt.pitchType, tt.want)
			}
		}
	})

	t.Run("always ends with format constraints", func(t *testing.T) {
		for _, pt := range []types.PitchType{types.PitchTypeElevator, types.PitchTypeDeck, types.PitchTypeValueProp} {
			in := input
			in.Type = pt

			prompt := buildPitchPrompt(in)
			if !strings.HasSuffix(prompt, "Réponds UNIQUEMENT avec le pitch, sans introduction ni commentaire.") {
				t.Errorf("type %q: prompt missing trailing constraint", pt)
			}
			if !strings.Contains(prompt, "Langue : Français professionnel") {
				t.Errorf("type %q: prompt missing language constraint", pt)
			}
		}
	})
}

func TestBuildImprovementPrompt(t *testing.T) {
	prompt := buildImprovementPrompt("mon pitch actuel", "raccourcir l'accroche")

	if !strings.Contains(prompt, "mon pitch actuel") {
		t.Error("prompt missing existing pitch")
	}
	if !strings.Contains(prompt, "raccourcir l'accroche") {
		t.Error("prompt missing suggestions")
	}
}

func TestBuildSuggestionsPrompt(t *testing.T) {
	prompt := buildSuggestionsPrompt("mon pitch à analyser")

	if !strings.Contains(prompt, "mon pitch à analyser") {
		t.Error("prompt missing pitch")
	}
	if !strings.Contains(prompt, "3 à 5 suggestions") {
		t.Error("prompt missing suggestion count instruction")
	}
}

func TestCleanGenerated(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text", "Nous transformons la livraison.", "Nous transformons la livraison."},
		{"surrounding whitespace", "  \n Nous transformons la livraison. \n", "Nous transformons la livraison."},
		{"voici le pitch prefix", "Voici le pitch : Nous transformons la livraison.", "Nous transformons la livraison."},
		{"voici prefix", "Voici : Nous transformons la livraison.", "Nous transformons la livraison."},
		{"le pitch prefix", "Le pitch : Nous transformons la livraison.", "Nous transformons la livraison."},
		{"pitch colon prefix", "Pitch : Nous transformons la livraison.", "Nous transformons la livraison."},
		{"english prefix", "Here is the pitch: Nous transformons la livraison.", "Nous transformons la livraison."},
		{"empty", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanGenerated(tt.in); got != tt.want {
				t.Errorf("cleanGenerated(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
