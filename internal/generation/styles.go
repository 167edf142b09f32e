package generation

import "adstudio/internal/domain"

const fallbackStylePrompt = "Create a high-quality, professional background."

var stylePrompts = map[domain.CreativeStyle]string{
	domain.StyleMinimalist: "Design a minimalist, clean composition with vast negative space. Use soft, neutral colors and simple geometric forms. Avoid clutter. Lighting should be soft and diffused. High-key photography style.",
	domain.StyleBold:       "Create a bold, modern design with high contrast and vibrant, saturated colors. Use dynamic angles and sharp geometric shapes. Tech-inspired aesthetic with a sleek finish.",
	domain.StyleElegant:    "Generate an image with a luxurious, high-end feel. Use a color palette of black, gold, silver, or deep jewel tones. Textures should look like silk, velvet, marble, or polished metal. Dramatic, cinematic lighting with bokeh effects.",
	domain.StylePlayful:    "Design a playful, energetic background with bright, poppy colors. Use rounded shapes and 3D-rendered elements with a clay-like or plastic texture. Soft shadows and even lighting.",
	domain.StyleFuturistic: "Create a futuristic, sci-fi inspired background. Use neon lights, cybernetic patterns, and a dark background with glowing accents (cyan, magenta, electric blue). Digital art style.",
	domain.StyleRetro:      "Apply a retro, vintage aesthetic (70s, 80s, or 90s). Use noise, grain, and slightly washed-out colors. Patterns like halftones or synthwave grids.",
	domain.StyleNatural:    "Use natural elements like leaves, wood, stone, and water. Earthy color palette (greens, browns, beiges). Soft, natural sunlight. Eco-friendly and fresh vibe.",
	domain.StyleCorporate:  "Design a professional, corporate background. Use clean lines, shades of blue and grey, and abstract architectural elements or office-like environments. Trustworthy and stable feel.",
	domain.StyleGrunge:     "Create a grunge, edgy style with distressed textures, urban elements, and darker, moodier lighting. Street art influence.",
	domain.StyleHandDrawn:  "Simulate a hand-drawn or watercolor artistic style. Textured paper background, sketch-like lines, and pastel colors.",
}

// StylePrompt resolves a creative style to its descriptive paragraph.
// Unknown styles get a neutral instruction.
func StylePrompt(style domain.CreativeStyle) string {
	if p, ok := stylePrompts[style]; ok {
		return p
	}
	return fallbackStylePrompt
}
