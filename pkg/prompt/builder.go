// Package prompt turns extracted document text into the instruction sent to the model.
package prompt

import "strings"

// Build wraps text in the fixed restructuring instructions. It is pure: the
// same text always yields the same prompt.
func Build(text string) string {
	var prompt strings.Builder

	writeTask(&prompt)
	writeDocument(&prompt, text)
	writeOutputFormat(&prompt)
	writeGuidelines(&prompt)

	return prompt.String()
}

func writeTask(prompt *strings.Builder) {
	prompt.WriteString("<task>\n")
	prompt.WriteString("You are a document analyst. Restructure the document below into clean, well organised Markdown.\n")
	prompt.WriteString("Keep every fact from the source. Do not invent data that is not in the document.\n")
	prompt.WriteString("</task>\n\n")
}

func writeDocument(prompt *strings.Builder, text string) {
	prompt.WriteString("<document>\n")
	prompt.WriteString(text)
	prompt.WriteString("\n</document>\n\n")
}

func writeOutputFormat(prompt *strings.Builder) {
	prompt.WriteString("<output_format>\n")
	prompt.WriteString("1. A level-one heading with the document title (infer one if missing).\n")
	prompt.WriteString("2. A \"## Summary\" section of two to four sentences.\n")
	prompt.WriteString("3. A \"## Key Data Points\" section: a Markdown table or bullet list of names, dates, amounts and figures.\n")
	prompt.WriteString("4. One \"##\" section per logical part of the document, in source order.\n")
	prompt.WriteString("</output_format>\n\n")
}

func writeGuidelines(prompt *strings.Builder) {
	prompt.WriteString("<guidelines>\n")
	prompt.WriteString("- Answer in the language of the document.\n")
	prompt.WriteString("- If the document text is empty or unreadable, say so in the summary.\n")
	prompt.WriteString("- Output only the Markdown, without any preamble.\n")
	prompt.WriteString("</guidelines>\n")
}
