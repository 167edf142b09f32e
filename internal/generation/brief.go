package generation

import (
	"fmt"
	"strings"

	"adstudio/internal/domain"
)

// Reference roles, in the order images are attached.
const (
	RoleBackgroundInspiration = "background inspiration"
	RoleTemplateRecreate      = "style reference to be recreated without text"
	RoleTemplateInspiration   = "style reference template"
)

const templateRecreation = `**CRITICAL INSTRUCTION FOR TEMPLATE RECREATION**: You have been provided with a template image.
Your task is to generate a new background image that perfectly matches the style, colors, composition, and non-textual elements of the template.
The generated image MUST have the exact same dimensions as the provided template image.
You MUST completely remove all text (headers, logos, paragraphs, button text) from the template.
The goal is a clean version of the template's background, ready for new text to be added later.`

const templateInspiration = "- Use the style, layout, and composition of the template image as a strong inspiration for the ad's design."

// BriefInput is everything the background brief is built from.
type BriefInput struct {
	Request     domain.CompositionRequest
	Client      *domain.Client
	AspectRatio domain.AspectRatio
	Roles       []string
}

// BuildBackgroundBrief writes the natural-language instruction sent with the
// reference images for one aspect ratio.
func BuildBackgroundBrief(in BriefInput) string {
	req := in.Request
	sb := &strings.Builder{}

	sb.WriteString("**ABSOLUTELY CRITICAL INSTRUCTIONS - READ CAREFULLY:**\n")
	sb.WriteString("1. **NO TEXT IN IMAGE:** Do not render, draw, or include ANY text, letters, words, or numbers in the generated image. Text will be overlaid later. The image must be art/background only.\n")
	sb.WriteString("2. **FULL BLEED / NO BORDERS:** The image must be full-bleed. Do NOT add white borders, frames, margins, or padding around the edges. The visual content must extend to the very edge of the canvas.\n")
	fmt.Fprintf(sb, "3. **ASPECT RATIO:** The final image must be optimized for the %q aspect ratio.\n\n", string(in.AspectRatio))

	sb.WriteString("**Task:** Generate a professional advertising background image.\n\n")

	sb.WriteString("**Context:**\n")
	fmt.Fprintf(sb, "- This is a %q ad.\n", coalesce(req.AdType, domain.DefaultAdType))
	fmt.Fprintf(sb, "- Use the following aesthetic style: %q.\n", string(req.CreativeStyle))
	fmt.Fprintf(sb, "- **Style Details:** %s\n\n", StylePrompt(req.CreativeStyle))

	sb.WriteString("**Composition:**\n")
	sb.WriteString("- Leave appropriate negative space (empty areas without busy details) for text overlay.\n")
	fmt.Fprintf(sb, "- The text that will be overlaid later (DO NOT WRITE THIS IN IMAGE): %q.\n\n", req.Header1)

	if len(in.Roles) > 0 {
		sb.WriteString("**Inputs:**\n")
		for i, role := range in.Roles {
			fmt.Fprintf(sb, "- The %s image is the %s.\n", ordinal(i+1), role)
		}
		sb.WriteString("\n")
	}

	if req.HasCharacterStyle() {
		fmt.Fprintf(sb, "- If the ad includes any people or characters, they MUST be in a %q style.\n", strings.TrimSpace(req.CharacterStyle))
	}
	if !req.TemplateStyleImage.IsZero() {
		if req.RecreateTemplate {
			sb.WriteString(templateRecreation)
			sb.WriteString("\n")
		} else {
			sb.WriteString(templateInspiration)
			sb.WriteString("\n")
		}
	}
	if c := in.Client; c != nil {
		fmt.Fprintf(sb, "- Use the brand's color palette: Primary (%s), Secondary (%s), and Tertiary (%s).\n", c.Colors.Primary, c.Colors.Secondary, c.Colors.Tertiary)
	}
	if p := strings.TrimSpace(req.Prompt); p != "" {
		fmt.Fprintf(sb, "- Additional User Instructions: %s\n", p)
	}

	sb.WriteString("\n**Final Check:**\n")
	sb.WriteString("- Is there any text in the image? If yes, remove it.\n")
	sb.WriteString("- Are there white borders? If yes, extend the background to the edge.\n")
	return sb.String()
}

func ordinal(n int) string {
	switch n {
	case 1:
		return "first"
	case 2:
		return "second"
	case 3:
		return "third"
	case 4:
		return "fourth"
	}
	return fmt.Sprintf("%dth", n)
}

func coalesce(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
