package domain

import (
	"context"
	"errors"
	"image"
	"sync"
)

type fakeLogger struct {
	mutex    sync.Mutex
	messages []string
}

func (f *fakeLogger) Log(message string) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.messages = append(f.messages, message)
}

type fakeSource struct {
	name     string
	snippets []Snippet
	err      error
	calls    int
}

func (f *fakeSource) Name() string {
	return f.name
}

func (f *fakeSource) FetchSnippets(_ context.Context, _ string) ([]Snippet, error) {
	f.calls++
	return f.snippets, f.err
}

func textSource(name, text string) *fakeSource {
	return &fakeSource{name: name, snippets: []Snippet{{Source: name, Text: text}}}
}

func failingSource(name string) *fakeSource {
	return &fakeSource{name: name, err: errors.New("connection refused")}
}

type fakeVisionModel struct {
	name     string
	answer   string
	err      error
	received [][]ChatMessage
}

func (f *fakeVisionModel) Name() string {
	return f.name
}

func (f *fakeVisionModel) Infer(_ context.Context, messages []ChatMessage) (string, error) {
	f.received = append(f.received, messages)
	return f.answer, f.err
}

type fakeImageEncoder struct {
	encoded string
	err     error
	urls    []string
}

func (f *fakeImageEncoder) EncodeImageFromURL(_ context.Context, url string) (string, error) {
	f.urls = append(f.urls, url)
	return f.encoded, f.err
}

func (f *fakeImageEncoder) EncodeImage(_ image.Image) (string, error) {
	return f.encoded, f.err
}
