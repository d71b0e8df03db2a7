package gemini

import (
	"context"
	"fmt"
	"time"

	"github.com/gdugdh24/mirrorfit-backend/internal/domain"
	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
)

const (
	DefaultFlashModel = "gemini-3-flash-preview"
	DefaultImageModel = "gemini-3-pro-image-preview"

	tryOnAspectRatio = "3:4"
	tryOnImageSize   = "1K"

	// OfflinePhotoFeedback accompanies the permissive verdict given when the
	// quality check cannot reach the AI service.
	OfflinePhotoFeedback = "Photo looks good (Offline Mode)"
)

const (
	opPhotoQuality = "photo_quality"
	opTryOn        = "try_on"
	opFitAnalysis  = "fit_analysis"
	opChatTurn     = "chat_turn"
	opTagItem      = "tag_item"
)

const photoQualityPrompt = "Analyze this photo for a virtual fashion try-on app. Is it a clear full-body or half-body photo of a person? Return JSON with boolean 'valid' and string 'feedback'."

const tryOnPrompt = `
You are an expert fashion AI.
Task: Generate a highly photorealistic image of the person in the first image wearing the clothing item in the second image.
Requirements:
1. Preserve the person's face, hair, body shape, and pose exactly.
2. Replace their current clothes with the new item.
3. Ensure realistic lighting, shadows, and fabric drape.
4. Maintain the background of the person's photo.
5. High resolution output.
Output: a single image, aspect ratio %s, resolution %s.
`

const fitAnalysisPrompt = "Compare the original body shape with the generated outfit. Provide a fit analysis in JSON."

const tagItemPrompt = "Analyze this clothing item. Return JSON with 'type', 'color', 'pattern', 'style'."

// Models names the models used per capability.
type Models struct {
	Flash string
	Image string
}

// Gateway translates domain requests into AI service calls and normalizes
// results and failures. It makes exactly one backend call per operation.
type Gateway struct {
	backend Backend
	models  Models
	logger  *zap.Logger
	metrics *Metrics
}

func NewGateway(backend Backend, models Models, logger *zap.Logger, metrics *Metrics) *Gateway {
	if models.Flash == "" {
		models.Flash = DefaultFlashModel
	}
	if models.Image == "" {
		models.Image = DefaultImageModel
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gateway{
		backend: backend,
		models:  models,
		logger:  logger.Named("gemini"),
		metrics: metrics,
	}
}

// AssessPhotoQuality never fails: when the service is unreachable or answers
// garbage the photo is accepted so onboarding is not blocked.
func (g *Gateway) AssessPhotoQuality(ctx context.Context, img domain.Image) domain.PhotoQuality {
	started := time.Now()
	resp, err := g.backend.Generate(ctx, Request{
		Model:  g.models.Flash,
		Schema: photoQualitySchema,
		Parts: []genai.Part{
			genai.ImageData(img.Format(), img.Data),
			genai.Text(photoQualityPrompt),
		},
	})
	var result domain.PhotoQuality
	if err == nil {
		result, err = decodePhotoQuality(responseText(resp))
	} else {
		err = fmt.Errorf("%w: %v", domain.ErrAIUnavailable, err)
	}
	g.metrics.observe(opPhotoQuality, started, err)

	if err != nil {
		g.logger.Warn("photo analysis failed, accepting photo", zap.Error(err))
		return domain.PhotoQuality{Valid: true, Feedback: OfflinePhotoFeedback}
	}
	return result
}

// SynthesizeTryOn renders the person wearing the garment. Failures are
// returned to the caller, which owns the fallback.
func (g *Gateway) SynthesizeTryOn(ctx context.Context, person, garment domain.Image) (domain.Image, error) {
	started := time.Now()
	img, err := g.synthesizeTryOn(ctx, person, garment)
	g.metrics.observe(opTryOn, started, err)
	if err != nil {
		g.logger.Error("try-on generation failed", zap.Error(err))
		return domain.Image{}, err
	}
	return img, nil
}

func (g *Gateway) synthesizeTryOn(ctx context.Context, person, garment domain.Image) (domain.Image, error) {
	resp, err := g.backend.Generate(ctx, Request{
		Model: g.models.Image,
		Parts: []genai.Part{
			genai.Text(fmt.Sprintf(tryOnPrompt, tryOnAspectRatio, tryOnImageSize)),
			genai.ImageData(person.Format(), person.Data),
			genai.ImageData(garment.Format(), garment.Data),
		},
	})
	if err != nil {
		return domain.Image{}, fmt.Errorf("%w: %v", domain.ErrAIUnavailable, err)
	}

	blob, ok := responseImage(resp)
	if !ok {
		return domain.Image{}, domain.ErrNoImageGenerated
	}
	mime := blob.MIMEType
	if mime == "" {
		mime = "image/png"
	}
	return domain.Image{MIMEType: mime, Data: blob.Data}, nil
}

// AnalyzeFit never fails: fit commentary is supplementary, so any failure
// yields DefaultFitAnalysis.
func (g *Gateway) AnalyzeFit(ctx context.Context, original, generated domain.Image) domain.FitAnalysis {
	started := time.Now()
	resp, err := g.backend.Generate(ctx, Request{
		Model:  g.models.Flash,
		Schema: fitAnalysisSchema,
		Parts: []genai.Part{
			genai.ImageData(original.Format(), original.Data),
			genai.ImageData(generated.Format(), generated.Data),
			genai.Text(fitAnalysisPrompt),
		},
	})
	var result domain.FitAnalysis
	if err == nil {
		result, err = decodeFitAnalysis(responseText(resp))
	} else {
		err = fmt.Errorf("%w: %v", domain.ErrAIUnavailable, err)
	}
	g.metrics.observe(opFitAnalysis, started, err)

	if err != nil {
		g.logger.Warn("fit analysis failed, using default", zap.Error(err))
		return domain.DefaultFitAnalysis()
	}
	return result
}

// NewConversation opens a stylist conversation bound to the stylist persona.
// The greeting is added by the screen that displays it.
func (g *Gateway) NewConversation() domain.Conversation {
	return domain.Conversation{Persona: domain.StylistPersona}
}

// SendTurn sends text on top of conv and returns the reply. The gateway keeps
// no chat state: the history is rebuilt from conv on every call.
func (g *Gateway) SendTurn(ctx context.Context, conv domain.Conversation, text string) (string, error) {
	started := time.Now()
	reply, err := g.sendTurn(ctx, conv, text)
	g.metrics.observe(opChatTurn, started, err)
	if err != nil {
		g.logger.Warn("stylist turn failed", zap.Error(err))
		return "", err
	}
	return reply, nil
}

func (g *Gateway) sendTurn(ctx context.Context, conv domain.Conversation, text string) (string, error) {
	persona := conv.Persona
	if persona == "" {
		persona = domain.StylistPersona
	}

	history := make([]*genai.Content, 0, len(conv.Messages))
	for _, m := range conv.History() {
		history = append(history, &genai.Content{
			Role:  string(m.Role),
			Parts: []genai.Part{genai.Text(m.Text)},
		})
	}

	resp, err := g.backend.Generate(ctx, Request{
		Model:             g.models.Flash,
		SystemInstruction: persona,
		History:           history,
		Parts:             []genai.Part{genai.Text(text)},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrAIUnavailable, err)
	}

	reply := responseText(resp)
	if reply == "" {
		return "", fmt.Errorf("%w: empty reply", domain.ErrMalformedAIResponse)
	}
	return reply, nil
}

// TagItem extracts wardrobe descriptors from a garment photo. There is no
// fallback; errors propagate.
func (g *Gateway) TagItem(ctx context.Context, img domain.Image) (domain.ItemTags, error) {
	started := time.Now()
	resp, err := g.backend.Generate(ctx, Request{
		Model:  g.models.Flash,
		Schema: itemTagsSchema,
		Parts: []genai.Part{
			genai.ImageData(img.Format(), img.Data),
			genai.Text(tagItemPrompt),
		},
	})
	var tags domain.ItemTags
	if err == nil {
		tags, err = decodeItemTags(responseText(resp))
	} else {
		err = fmt.Errorf("%w: %v", domain.ErrAIUnavailable, err)
	}
	g.metrics.observe(opTagItem, started, err)
	if err != nil {
		return domain.ItemTags{}, err
	}
	return tags, nil
}
