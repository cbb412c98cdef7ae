package providers

import (
	"fmt"
	"strings"

	"github.com/youssefhoussam/pitch-service/internal/types"
)

// buildPitchPrompt assembles the generation prompt deterministically: role
// preamble, startup context, structured inputs, type-specific instructions,
// then the tone/format/language constraints appended verbatim for every type.
func buildPitchPrompt(in GenerateInput) string {
	var b strings.Builder

	b.WriteString("Tu es un expert en pitchs de start-ups et en levées de fonds.\n\n")

	b.WriteString("Contexte de la start-up :\n")
	b.WriteString("- Nom : " + in.Startup.Name + "\n")
	b.WriteString("- Secteur : " + in.Startup.Sector + "\n")
	if in.Startup.Description != "" {
		b.WriteString("- Description : " + in.Startup.Description + "\n")
	}

	b.WriteString("\nInformations fournies :\n")
	b.WriteString("- Problème : " + in.Problem + "\n")
	b.WriteString("- Solution : " + in.Solution + "\n")
	b.WriteString("- Cible : " + in.Target + "\n")
	b.WriteString("- Avantage compétitif : " + in.Advantage + "\n\n")

	switch in.Type {
	case types.PitchTypeDeck:
		b.WriteString("Génère une structure de pitch deck professionnelle avec :\n")
		b.WriteString("1. Un titre accrocheur\n")
		b.WriteString("2. Le problème (2-3 phrases)\n")
		b.WriteString("3. La solution (2-3 phrases)\n")
		b.WriteString("4. Le marché cible\n")
		b.WriteString("5. L'avantage concurrentiel\n")
		b.WriteString("6. Un appel à l'action\n\n")
	case types.PitchTypeValueProp:
		b.WriteString("Génère une proposition de valeur claire et concise (80-100 mots) qui :\n")
		b.WriteString("1. Identifie le bénéfice principal\n")
		b.WriteString("2. Explique comment la solution apporte ce bénéfice\n")
		b.WriteString("3. Différencie de la concurrence\n\n")
	default:
		b.WriteString("Génère un elevator pitch professionnel de 120-150 mots maximum qui :\n")
		b.WriteString("1. Accroche dès la première phrase\n")
		b.WriteString("2. Présente clairement le problème et la solution\n")
		b.WriteString("3. Met en avant la proposition de valeur unique\n")
		b.WriteString("4. Est orienté bénéfices pour les clients\n")
		b.WriteString("5. Se termine par un call-to-action implicite\n\n")
	}

	b.WriteString("Ton : Professionnel, confiant, concis\n")
	b.WriteString("Format : Un ou plusieurs paragraphes fluides sans bullet points\n")
	b.WriteString("Langue : Français professionnel\n\n")
	b.WriteString("Réponds UNIQUEMENT avec le pitch, sans introduction ni commentaire.")

	return b.String()
}

// buildImprovementPrompt assembles the improvement prompt.
func buildImprovementPrompt(existing, suggestions string) string {
	return fmt.Sprintf(
		"Tu es un expert en pitchs de start-ups.\n\n"+
			"Voici un pitch existant :\n%s\n\n"+
			"Suggestions d'amélioration :\n%s\n\n"+
			"Améliore ce pitch en tenant compte des suggestions. "+
			"Garde le même ton professionnel et la même longueur approximative. "+
			"Réponds uniquement avec le pitch amélioré, sans commentaire.",
		existing, suggestions,
	)
}

// buildSuggestionsPrompt assembles the analysis prompt.
func buildSuggestionsPrompt(pitch string) string {
	return fmt.Sprintf(
		"Tu es un expert en pitchs de start-ups.\n\n"+
			"Analyse ce pitch :\n%s\n\n"+
			"Fournis 3 à 5 suggestions concrètes d'amélioration concernant :\n"+
			"- La clarté du message\n"+
			"- L'impact des mots utilisés\n"+
			"- La structure narrative\n"+
			"- L'appel à l'action\n\n"+
			"Sois concis et actionnable.",
		pitch,
	)
}

// boilerplatePrefixes are conversational lead-ins that models prepend despite
// being told not to.
var boilerplatePrefixes = []string{
	"Voici le pitch",
	"Voici",
	"Le pitch",
	"Pitch :",
	"Pitch:",
	"Here is the pitch",
	"Here is",
}

// cleanGenerated trims whitespace and strips known boilerplate prefixes from
// provider output.
func cleanGenerated(text string) string {
	cleaned := strings.TrimSpace(text)
	for _, prefix := range boilerplatePrefixes {
		if strings.HasPrefix(cleaned, prefix) {
			cleaned = strings.TrimSpace(strings.TrimPrefix(cleaned, prefix))
			cleaned = strings.TrimSpace(strings.TrimPrefix(cleaned, ":"))
		}
	}
	return cleaned
}
