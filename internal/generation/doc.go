// Package generation defines the boundary between providers and the external
// text-analysis backends they talk to. A Transport carries one summarize or
// question request to a backend and returns its raw text; implementations live
// under internal/platform (simulated, Hugging Face, MeaningCloud, Gemini).
package generation
