package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

const (
	voiceTempFilePerm = 0644
	voiceTempDir      = "tmp/voices"
)

type AudioConverter interface {
	ConvertToMP3(inputPath string) (string, error)
}

type Transcriber interface {
	TranscribeAudio(ctx context.Context, audioFilePath string) (string, error)
}

type SpeechSynthesizer interface {
	SynthesizeSpeech(ctx context.Context, text string) ([]byte, string, error)
}

type Responder interface {
	Respond(ctx context.Context, conversationID, accountNumber, message string) (*ChatResponse, error)
}

// VoiceResponse is the regular chat turn plus what was heard and,
// optionally, spoken audio of the reply.
type VoiceResponse struct {
	*ChatResponse
	Transcript  string `json:"transcript"`
	Audio       []byte `json:"audio,omitempty"`
	AudioFormat string `json:"audio_format,omitempty"`
}

type voiceService struct {
	converter   AudioConverter
	transcriber Transcriber
	synthesizer SpeechSynthesizer
	responder   Responder
}

func NewVoiceService(
	converter AudioConverter,
	transcriber Transcriber,
	synthesizer SpeechSynthesizer,
	responder Responder,
) *voiceService {
	return &voiceService{
		converter:   converter,
		transcriber: transcriber,
		synthesizer: synthesizer,
		responder:   responder,
	}
}

// RespondToVoice transcribes an uploaded recording and runs it through the
// chat pipeline. When withAudio is set the reply is also synthesized.
func (v *voiceService) RespondToVoice(
	ctx context.Context,
	conversationID, accountNumber string,
	audio []byte,
	extension string,
	withAudio bool,
) (*VoiceResponse, error) {
	if v.transcriber == nil {
		return nil, fmt.Errorf("voice input is not configured")
	}

	if err := os.MkdirAll(voiceTempDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("creating voice temp directory: %w", err)
	}

	voiceFilePath := filepath.Join(voiceTempDir, fmt.Sprintf("voice-%d%s", time.Now().UnixNano(), extension))
	if err := os.WriteFile(voiceFilePath, audio, voiceTempFilePerm); err != nil {
		return nil, fmt.Errorf("saving voice file: %w", err)
	}

	mp3Path, err := v.converter.ConvertToMP3(voiceFilePath)
	if err != nil {
		return nil, fmt.Errorf("converting voice file to MP3: %w", err)
	}
	defer os.Remove(mp3Path)

	transcript, err := v.transcriber.TranscribeAudio(ctx, mp3Path)
	if err != nil {
		return nil, fmt.Errorf("transcribing audio file: %w", err)
	}

	chat, err := v.responder.Respond(ctx, conversationID, accountNumber, transcript)
	if err != nil {
		return nil, err
	}

	resp := &VoiceResponse{ChatResponse: chat, Transcript: transcript}

	if withAudio && v.synthesizer != nil && len(chat.Messages) > 0 {
		reply := chat.Messages[len(chat.Messages)-1].Content
		data, format, err := v.synthesizer.SynthesizeSpeech(ctx, reply)
		if err != nil {
			// Voice output is best effort, the text reply already succeeded.
			slog.ErrorContext(ctx, "Failed to synthesize speech", "err", err)
		} else {
			resp.Audio = data
			resp.AudioFormat = format
		}
	}

	return resp, nil
}
