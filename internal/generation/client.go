package generation

import (
	"context"

	"github.com/sagelearning/sage-api/internal/domain"
)

// Client is the boundary between the application core and the remote
// generation backend. Implementations issue exactly one outbound request
// per call: no automatic retries, no caching or deduplication, and no
// session state between calls. Conversation continuity is the caller's
// responsibility (the full ordered history is passed on every chat call),
// so a Client is safe to invoke concurrently.
type Client interface {
	// GenerateText sends a plain instruction and returns the response
	// text. Fails with a *BackendError if the remote call rejects or the
	// backend is unreachable.
	GenerateText(ctx context.Context, modelID, instruction string) (string, error)

	// GenerateStructured performs the same call with the shape attached
	// as a generation-time output constraint and returns the raw response
	// text. Decoding into a typed value is a separate step (DecodeList,
	// DecodeObject) so the two failure points stay distinguishable.
	GenerateStructured(
		ctx context.Context,
		modelID, instruction string,
		shape *Shape,
	) (string, error)

	// GenerateMultimodal sends an instruction together with a binary
	// attachment. The media type is passed through untouched; the backend
	// is the sole authority on what it accepts.
	GenerateMultimodal(
		ctx context.Context,
		modelID, instruction string,
		attachment []byte,
		mediaType string,
	) (string, error)

	// GenerateChat sends a full ordered conversation history and returns
	// the model's next turn.
	GenerateChat(
		ctx context.Context,
		modelID string,
		history []domain.ChatMessage,
	) (string, error)
}
