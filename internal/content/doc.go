// Package content turns normalized source text into learning artifacts.
//
// Service composes the source normalizer and the generation client:
//
//   - GenerateNotes: video reference to Markdown study notes, framed by
//     whether a transcript or only metadata was available
//   - AnalyzeDocument and GenerateQuestionBank: one generation over a
//     document's extracted text, never attempted when extraction failed
//   - BuildRoadmap: four independent generations for one topic, returning
//     whatever succeeded alongside an aggregated error
//   - GenerateVisual: an image-first fallback chain that degrades to text
//
// Prompts are text/template files embedded from prompts/.
package content
