package voice

import (
	"context"
	"fmt"
	"io"

	"google.golang.org/genai"
)

// SystemInstruction sets the spoken concierge persona.
const SystemInstruction = "You are the energetic, friendly AI Concierge for Padel & Palms, a luxury padel resort in Siargao. " +
	"Keep your responses brief, helpful, and use a relaxed, tropical tone. " +
	"Help guests with towels, drinks, and court bookings."

// GeminiConnector opens Gemini Live sessions answering with audio.
type GeminiConnector struct {
	client *genai.Client
	model  string
	voice  string
}

func NewGeminiConnector(client *genai.Client, model, voice string) *GeminiConnector {
	return &GeminiConnector{client: client, model: model, voice: voice}
}

func (g *GeminiConnector) Connect(ctx context.Context) (LiveConn, error) {
	sess, err := g.client.Live.Connect(ctx, g.model, &genai.LiveConnectConfig{
		ResponseModalities: []genai.Modality{genai.ModalityAudio},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: g.voice},
			},
		},
		SystemInstruction: genai.NewContentFromText(SystemInstruction, genai.RoleUser),
	})
	if err != nil {
		return nil, fmt.Errorf("live connect: %w", err)
	}
	return &geminiConn{sess: sess}, nil
}

type geminiConn struct {
	sess *genai.Session
}

func (c *geminiConn) Send(_ context.Context, pcm []byte) error {
	return c.sess.SendRealtimeInput(genai.LiveRealtimeInput{
		Audio: &genai.Blob{Data: pcm, MIMEType: InputMIMEType},
	})
}

func (c *geminiConn) Receive() (Message, error) {
	msg, err := c.sess.Receive()
	if err != nil {
		return Message{}, err
	}
	return toMessage(msg)
}

func (c *geminiConn) Close() error {
	return c.sess.Close()
}

// toMessage flattens a server message. A GoAway ends the conversation.
func toMessage(msg *genai.LiveServerMessage) (Message, error) {
	if msg == nil {
		return Message{}, nil
	}
	if msg.GoAway != nil {
		return Message{}, io.EOF
	}

	var out Message
	sc := msg.ServerContent
	if sc == nil {
		return out, nil
	}
	out.Interrupted = sc.Interrupted
	out.TurnComplete = sc.TurnComplete
	if sc.ModelTurn != nil {
		for _, part := range sc.ModelTurn.Parts {
			if part != nil && part.InlineData != nil {
				out.Audio = append(out.Audio, part.InlineData.Data...)
			}
		}
	}
	return out, nil
}
