// Package source turns heterogeneous learner input into plain text that can be
// placed into a generation prompt. Two independent paths exist: uploaded
// documents are dispatched on their declared media type and fail fast with an
// ExtractionError, while video references degrade to whatever text can be
// recovered (transcript, then page metadata, then an error description).
package source
