// Package speech provides a thin client for the Azure Cognitive Services
// Speech REST API: Ukrainian text-to-speech synthesis, short-form speech
// recognition and canned voice announcements.
package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gridvoice/gridvoice/internal/domain"
)

const (
	defaultVoice    = "uk-UA-PolinaNeural"
	defaultLanguage = "uk-UA"

	// Riff24Khz16BitMonoPcm: WAV the browser audio element plays directly.
	outputFormat = "riff-24khz-16bit-mono-pcm"

	requestTimeout = 30 * time.Second
)

// UsageStats counts speech service usage since process start.
type UsageStats struct {
	TTSRequests           int     `json:"tts_requests"`
	STTRequests           int     `json:"stt_requests"`
	CharactersSynthesized int     `json:"characters_synthesized"`
	AudioDurationSeconds  float64 `json:"audio_duration_seconds"`
}

// Client talks to the Azure Speech REST endpoints of one region.
// Synthesized audio is cached in memory keyed by text, voice and prosody,
// so repeated announcements cost one API call.
type Client struct {
	key        string
	region     string
	voice      string
	language   string
	httpClient *http.Client

	mu    sync.Mutex
	cache map[string][]byte
	stats UsageStats
}

// Option customizes a Client.
type Option func(*Client)

func WithVoice(voice string) Option {
	return func(c *Client) { c.voice = voice }
}

func WithLanguage(language string) Option {
	return func(c *Client) { c.language = language }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a speech client for the given subscription key and
// Azure region.
func NewClient(key, region string, opts ...Option) *Client {
	c := &Client{
		key:        key,
		region:     region,
		voice:      defaultVoice,
		language:   defaultLanguage,
		httpClient: &http.Client{Timeout: requestTimeout},
		cache:      make(map[string][]byte),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) ttsURL() string {
	return fmt.Sprintf("https://%s.tts.speech.microsoft.com/cognitiveservices/v1", c.region)
}

func (c *Client) sttURL() string {
	return fmt.Sprintf("https://%s.stt.speech.microsoft.com/speech/recognition/conversation/cognitiveservices/v1?language=%s&format=simple", c.region, c.language)
}

// Prosody adjusts synthesis speed and pitch in percent, -100 to 100. The
// zero value means service defaults.
type Prosody struct {
	Rate  int
	Pitch int
}

func prosodyAttr(v int) string {
	if v == 0 {
		return "default"
	}
	return fmt.Sprintf("%d%%", v)
}

func (c *Client) ssml(text, voice string, prosody Prosody) string {
	return fmt.Sprintf(
		`<speak version="1.0" xmlns="http://www.w3.org/2001/10/synthesis" xml:lang="%s"><voice name="%s"><prosody rate="%s" pitch="%s">%s</prosody></voice></speak>`,
		c.language, voice, prosodyAttr(prosody.Rate), prosodyAttr(prosody.Pitch), xmlEscape(text),
	)
}

func xmlEscape(s string) string {
	var b bytes.Buffer
	for _, r := range s {
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Synthesize converts text to WAV audio. An empty voice uses the client
// default. Results are cached per (text, voice, prosody).
func (c *Client) Synthesize(ctx context.Context, text, voice string, prosody Prosody) ([]byte, error) {
	if text == "" {
		return nil, domain.ErrEmptySynthesisText
	}
	if voice == "" {
		voice = c.voice
	}

	cacheKey := fmt.Sprintf("%s|%s|%d|%d", text, voice, prosody.Rate, prosody.Pitch)

	c.mu.Lock()
	if audio, ok := c.cache[cacheKey]; ok {
		c.mu.Unlock()
		return audio, nil
	}
	c.mu.Unlock()

	body := c.ssml(text, voice, prosody)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.ttsURL(), bytes.NewBufferString(body))
	if err != nil {
		return nil, fmt.Errorf("create synthesis request: %w", err)
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", c.key)
	req.Header.Set("Content-Type", "application/ssml+xml")
	req.Header.Set("X-Microsoft-OutputFormat", outputFormat)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.ErrSpeechSynthesisFailed.WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, domain.ErrSpeechSynthesisFailed.WithCause(fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.ErrSpeechSynthesisFailed.WithCause(err)
	}

	c.mu.Lock()
	c.cache[cacheKey] = audio
	c.stats.TTSRequests++
	c.stats.CharactersSynthesized += len([]rune(text))
	// 24 kHz, 16-bit mono PCM: 48000 bytes per second, header ignored.
	c.stats.AudioDurationSeconds += float64(len(audio)) / 48000
	c.mu.Unlock()

	return audio, nil
}

type recognitionResponse struct {
	RecognitionStatus string `json:"RecognitionStatus"`
	DisplayText       string `json:"DisplayText"`
}

// Transcribe recognizes short-form speech from WAV audio and returns the
// display text.
func (c *Client) Transcribe(ctx context.Context, audio []byte) (string, error) {
	if len(audio) == 0 {
		return "", domain.ErrSpeechRecognitionFailed.WithCause(fmt.Errorf("empty audio"))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.sttURL(), bytes.NewReader(audio))
	if err != nil {
		return "", fmt.Errorf("create recognition request: %w", err)
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", c.key)
	req.Header.Set("Content-Type", "audio/wav; codecs=audio/pcm; samplerate=16000")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", domain.ErrSpeechRecognitionFailed.WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", domain.ErrSpeechRecognitionFailed.WithCause(fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var result recognitionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", domain.ErrSpeechRecognitionFailed.WithCause(err)
	}

	if result.RecognitionStatus != "Success" {
		return "", domain.ErrSpeechRecognitionFailed.WithCause(fmt.Errorf("recognition status %s", result.RecognitionStatus))
	}

	c.mu.Lock()
	c.stats.STTRequests++
	c.mu.Unlock()

	return result.DisplayText, nil
}

// Usage returns a snapshot of the usage counters.
func (c *Client) Usage() UsageStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}
