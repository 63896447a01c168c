package backend

import (
	"encoding/json"
	"strings"

	"github.com/agentscope-ai/bricks-go/pkg/task"
)

// restEnvelope is the outer shape of every DashScope-style JSON reply.
type restEnvelope struct {
	RequestID string          `json:"request_id"`
	Code      string          `json:"code"`
	Message   string          `json:"message"`
	Output    json.RawMessage `json:"output"`
}

// restOutput covers the union of creation, fetch and synchronous
// generation replies. Result-bearing fields vary per capability; all
// non-empty artifact references found are collected in encounter order.
type restOutput struct {
	TaskID     string          `json:"task_id"`
	TaskStatus string          `json:"task_status"`
	VideoURL   string          `json:"video_url"`
	ImageURL   string          `json:"image_url"`
	Results    json.RawMessage `json:"results"`
	Choices    []restChoice    `json:"choices"`
	Audio      restAudio       `json:"audio"`
}

type restChoice struct {
	Message restMessage `json:"message"`
}

type restMessage struct {
	// Content may be a string, a list of mixed string/record items, or a
	// single record. Decoded per variant in contentArtifacts.
	Content json.RawMessage `json:"content"`
}

type restAudio struct {
	URL string `json:"url"`
}

// decodeReply reduces a raw HTTP reply to the intermediate Reply record.
// Non-2xx replies are returned with TransportOK=false and are never a
// parse error; a 2xx body that is not valid JSON, or whose output field
// has an unrecognized shape, is a ResponseParseError.
func decodeReply(op string, statusCode int, body []byte) (Reply, error) {
	reply := Reply{
		TransportOK: statusCode >= 200 && statusCode < 300,
		StatusCode:  statusCode,
		Raw:         string(body),
	}

	var env restEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		if !reply.TransportOK {
			return reply, nil
		}
		return Reply{}, &task.ResponseParseError{Op: op, Reason: "body is not valid JSON", Raw: string(body)}
	}
	reply.RequestID = env.RequestID

	if len(env.Output) == 0 || !reply.TransportOK {
		return reply, nil
	}

	var out restOutput
	if err := json.Unmarshal(env.Output, &out); err != nil {
		return Reply{}, &task.ResponseParseError{Op: op, Reason: "output field has unrecognized shape", Raw: string(body)}
	}

	reply.TaskID = out.TaskID
	reply.Status = out.TaskStatus
	reply.Artifacts = extractArtifacts(out)
	return reply, nil
}

// extractArtifacts collects every non-empty artifact reference from a
// decoded output, in a fixed scan order: results, choices, then the
// scalar url fields. Unrecognized shapes contribute zero artifacts
// rather than an error.
func extractArtifacts(out restOutput) []string {
	var refs []string
	refs = append(refs, resultsArtifacts(out.Results)...)
	for _, c := range out.Choices {
		refs = append(refs, contentArtifacts(c.Message.Content)...)
	}
	if out.VideoURL != "" {
		refs = append(refs, out.VideoURL)
	}
	if out.ImageURL != "" {
		refs = append(refs, out.ImageURL)
	}
	if out.Audio.URL != "" {
		refs = append(refs, out.Audio.URL)
	}
	return refs
}

// resultsArtifacts handles the two observed shapes of the results field:
// a list of url strings, or a list of records with a url field.
func resultsArtifacts(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var urls []string
	if err := json.Unmarshal(raw, &urls); err == nil {
		return nonEmpty(urls)
	}
	var records []struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(raw, &records); err == nil {
		var refs []string
		for _, r := range records {
			if r.URL != "" {
				refs = append(refs, r.URL)
			}
		}
		return refs
	}
	return nil
}

// contentArtifacts handles the three observed message content variants.
func contentArtifacts(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if isRef(s) {
			return []string{s}
		}
		return nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err == nil {
		var refs []string
		for _, item := range items {
			var is string
			if err := json.Unmarshal(item, &is); err == nil {
				if isRef(is) {
					refs = append(refs, is)
				}
				continue
			}
			refs = append(refs, recordArtifacts(item)...)
		}
		return refs
	}

	return recordArtifacts(raw)
}

// recordArtifacts pulls artifact references out of a single content
// record such as {"image": url} or {"video": url}.
func recordArtifacts(raw json.RawMessage) []string {
	var record struct {
		Image string `json:"image"`
		Video string `json:"video"`
		Audio string `json:"audio"`
		URL   string `json:"url"`
	}
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil
	}
	var refs []string
	for _, v := range []string{record.Image, record.Video, record.Audio, record.URL} {
		if v != "" {
			refs = append(refs, v)
		}
	}
	return refs
}

func isRef(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func nonEmpty(urls []string) []string {
	var refs []string
	for _, u := range urls {
		if u != "" {
			refs = append(refs, u)
		}
	}
	return refs
}
