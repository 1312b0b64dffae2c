package triage

import "strings"

// KV is the session-scoped key-value store the answer state lives in. It is
// injected so the triage logic never depends on a specific storage medium.
type KV interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Clear()
}

type MemoryKV struct {
	values map[string]string
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: map[string]string{}}
}

func (m *MemoryKV) Get(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *MemoryKV) Set(key, value string) {
	m.values[key] = value
}

func (m *MemoryKV) Clear() {
	m.values = map[string]string{}
}

// AnswerStore holds the answers for one animal in a booking session. Prefix
// namespaces keys so a second animal sharing the question catalog never
// collides with the first.
type AnswerStore struct {
	kv     KV
	prefix string
}

func NewAnswerStore(kv KV, prefix string) *AnswerStore {
	return &AnswerStore{kv: kv, prefix: prefix}
}

func (a *AnswerStore) key(questionKey string) string {
	return a.prefix + questionKey
}

func (a *AnswerStore) Set(questionKey, value string) {
	a.kv.Set(a.key(questionKey), value)
}

func (a *AnswerStore) Answer(questionKey string) (string, bool) {
	return a.kv.Get(a.key(questionKey))
}

// Answered reports whether the question has a non-empty answer.
func (a *AnswerStore) Answered(questionKey string) bool {
	v, ok := a.Answer(questionKey)
	return ok && strings.TrimSpace(v) != ""
}

// Reset drops the whole backing store, both animals included.
func (a *AnswerStore) Reset() {
	a.kv.Clear()
}

// AnswerMap adapts a plain answers map, already prefixed or not, to the
// lookup the completion gate needs. Used by the stateless validate endpoint.
type AnswerMap map[string]string

func (m AnswerMap) Answer(questionKey string) (string, bool) {
	v, ok := m[questionKey]
	return v, ok
}
