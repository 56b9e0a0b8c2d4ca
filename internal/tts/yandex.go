package tts

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/metadata"

	ttsv3 "github.com/yandex-cloud/go-genproto/yandex/cloud/ai/tts/v3"

	"github.com/mrlokans/wortschatz/internal/entities"
)

const YandexEndpoint = "tts.api.cloud.yandex.net:443"

type YandexConfig struct {
	APIKey   string
	FolderID string
	Voices   Voices
	// Model is the SpeechKit model name. Default: general
	Model string
	// Speed is the speaking rate hint. Default: 1.0
	Speed float64
}

// YandexClient synthesizes speech with Yandex SpeechKit v3 over gRPC.
type YandexClient struct {
	client ttsv3.SynthesizerClient
	conn   *grpc.ClientConn
	config YandexConfig
}

var _ Synthesizer = (*YandexClient)(nil)

func NewYandexClient(config YandexConfig) (*YandexClient, error) {
	if config.APIKey == "" {
		return nil, errors.New("speechkit api key is required")
	}

	creds := credentials.NewTLS(&tls.Config{})
	conn, err := grpc.Dial(YandexEndpoint, grpc.WithTransportCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to TTS service: %w", err)
	}

	return newYandexClient(conn, config), nil
}

func newYandexClient(conn *grpc.ClientConn, config YandexConfig) *YandexClient {
	defaults := DefaultVoices()
	if config.Voices.German == "" {
		config.Voices.German = defaults.German
	}
	if config.Voices.English == "" {
		config.Voices.English = defaults.English
	}
	if config.Model == "" {
		config.Model = "general"
	}
	if config.Speed <= 0 {
		config.Speed = 1.0
	}

	return &YandexClient{
		client: ttsv3.NewSynthesizerClient(conn),
		conn:   conn,
		config: config,
	}
}

// Synthesize returns the complete MP3 clip for text spoken in the cue's language.
func (c *YandexClient) Synthesize(ctx context.Context, text string, cue entities.CueType) ([]byte, error) {
	ctx = metadata.AppendToOutgoingContext(ctx, "authorization", "Api-Key "+c.config.APIKey)
	if c.config.FolderID != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, "x-folder-id", c.config.FolderID)
	}

	stream, err := c.client.UtteranceSynthesis(ctx, c.buildRequest(text, cue))
	if err != nil {
		return nil, fmt.Errorf("failed to start synthesis: %w", err)
	}

	var clip bytes.Buffer
	for {
		resp, err := stream.Recv()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to receive audio data: %w", err)
		}
		if chunk := resp.GetAudioChunk(); chunk != nil {
			clip.Write(chunk.GetData())
		}
	}

	if clip.Len() == 0 {
		return nil, fmt.Errorf("synthesis of %q returned no audio", text)
	}
	return clip.Bytes(), nil
}

func (c *YandexClient) buildRequest(text string, cue entities.CueType) *ttsv3.UtteranceSynthesisRequest {
	req := &ttsv3.UtteranceSynthesisRequest{}
	req.SetModel(c.config.Model)
	req.SetText(text)

	voiceHint := &ttsv3.Hints{}
	voiceHint.SetVoice(c.config.Voices.forCue(cue))

	speedHint := &ttsv3.Hints{}
	speedHint.SetSpeed(c.config.Speed)

	req.SetHints([]*ttsv3.Hints{voiceHint, speedHint})

	container := &ttsv3.ContainerAudio{}
	container.SetContainerAudioType(ttsv3.ContainerAudio_MP3)
	audioSpec := &ttsv3.AudioFormatOptions{}
	audioSpec.SetContainerAudio(container)
	req.SetOutputAudioSpec(audioSpec)

	req.SetLoudnessNormalizationType(ttsv3.UtteranceSynthesisRequest_LUFS)
	return req
}

func (c *YandexClient) Close() error {
	return c.conn.Close()
}
