package converter

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path"
)

// AudioToMP3 shells out to ffmpeg to normalize browser audio captures
// (ogg, oga, webm, wav) into mp3 for transcription.
type AudioToMP3 struct{}

func (a *AudioToMP3) ConvertToMP3(inputPath string) (string, error) {
	ext := path.Ext(inputPath)
	if ext == ".mp3" {
		return inputPath, nil
	}

	slog.Info("Converting voice recording to mp3...", "inputPath", inputPath)

	outputPath, err := convertAudioToMp3(inputPath)
	defer os.Remove(inputPath)
	if err != nil {
		return "", fmt.Errorf("converting file: %w", err)
	}

	slog.Info("Conversion successful", "inputPath", inputPath, "outputPath", outputPath)

	return outputPath, nil
}

func convertAudioToMp3(filePath string) (string, error) {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return "", fmt.Errorf("looking for `ffmpeg`: %w", err)
	}

	newFilePath := filePath + ".mp3"

	cmd := exec.Command("ffmpeg", "-i", filePath, newFilePath)
	if _, err := cmd.CombinedOutput(); err != nil {
		return newFilePath, fmt.Errorf("running `ffmpeg`: %w", err)
	}

	return newFilePath, nil
}
