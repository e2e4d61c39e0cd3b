// Package mocks provides hand-written test doubles shared by the test suites.
//
// Every mock follows the same shape: a function field per method that, when
// set, takes over the call; default return values used otherwise; and a
// mutex-guarded record of the calls made. Scripted mocks (NewScriptedGenerator)
// return a sequence of results, one per call, which is how fallback tiers are
// driven in tests.
//
//	gen := mocks.NewScriptedGenerator(
//		mocks.Step{Result: generation.EmptyResult()},
//		mocks.Step{Result: generation.ImageResult(png, "image/png")},
//	)
//
// Available doubles:
//
//   - MockGenerator: generation.Generator
//   - MockBackend: generation.Backend
//   - MockNormalizer: content.SourceNormalizer
//   - MockContentService: api.ContentService
package mocks
