package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentscope-ai/bricks-go/pkg/capabilities"
	"github.com/agentscope-ai/bricks-go/pkg/config"
	"github.com/agentscope-ai/bricks-go/pkg/gateway"
	"github.com/agentscope-ai/bricks-go/pkg/polling"
	"github.com/agentscope-ai/bricks-go/pkg/registry"
	"github.com/agentscope-ai/bricks-go/pkg/task"
	"github.com/agentscope-ai/bricks-go/pkg/tracker"
	"github.com/agentscope-ai/bricks-go/pkg/utils"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: bricks <command> [args]")
		fmt.Println("Commands: onboard, bundles, image, edit, speech, video, fetch, poll, save")
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]
	switch cmd {
	case "onboard":
		runOnboard()
	case "bundles":
		runBundles(args)
	case "image":
		runImage(args)
	case "edit":
		runEdit(args)
	case "speech":
		runSpeech(args)
	case "video":
		runVideo(args)
	case "fetch":
		runFetch(args)
	case "poll":
		runPoll(args)
	case "save":
		runSave(args)
	default:
		fmt.Printf("Unknown command: %s\n", cmd)
		os.Exit(1)
	}
}

// setup loads the config, wires logging and builds the capability
// factory with a trace hook that lands in the log file.
func setup(configPath string) (*config.Config, *capabilities.Factory) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	utils.SetupLogger(filepath.Join(cfg.Workspace, "logs"))

	trace := func(label string, event gateway.Event) {
		log.Printf("[%s] request_id=%s payload=%v", label, event.RequestID, event.Payload)
	}
	return cfg, capabilities.NewFactory(cfg, trace)
}

func printJSON(v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("Error encoding output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(data))
}

func fail(err error) {
	fmt.Printf("Error: %v\n", err)
	os.Exit(1)
}

func runBundles(args []string) {
	fs := flag.NewFlagSet("bundles", flag.ExitOnError)
	configPath := fs.String("c", "", "Path to config file")
	fs.Parse(args)

	_, factory := setup(*configPath)
	reg, err := registry.New(capabilities.DefaultBundles(factory))
	if err != nil {
		fail(err)
	}
	printJSON(reg.Export())
}

func runImage(args []string) {
	fs := flag.NewFlagSet("image", flag.ExitOnError)
	configPath := fs.String("c", "", "Path to config file")
	prompt := fs.String("prompt", "", "Text prompt")
	size := fs.String("size", "", "Output resolution, e.g. 1280*1280")
	n := fs.Int("n", 0, "Number of images (1-4)")
	requestID := fs.String("request-id", "", "Correlation request id")
	fs.Parse(args)

	_, factory := setup(*configPath)
	out, err := factory.ImageGeneration().Run(context.Background(),
		gateway.Correlation{RequestID: *requestID},
		capabilities.ImageGenerationInput{Prompt: *prompt, Size: *size, N: *n})
	if err != nil {
		fail(err)
	}
	printJSON(out)
}

func runEdit(args []string) {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	configPath := fs.String("c", "", "Path to config file")
	prompt := fs.String("prompt", "", "Text prompt")
	images := fs.String("images", "", "Comma-separated reference image URLs")
	requestID := fs.String("request-id", "", "Correlation request id")
	fs.Parse(args)

	_, factory := setup(*configPath)
	out, err := factory.ImageEdit().Run(context.Background(),
		gateway.Correlation{RequestID: *requestID},
		capabilities.ImageEditInput{Prompt: *prompt, Images: splitList(*images)})
	if err != nil {
		fail(err)
	}
	printJSON(out)
}

func runSpeech(args []string) {
	fs := flag.NewFlagSet("speech", flag.ExitOnError)
	configPath := fs.String("c", "", "Path to config file")
	text := fs.String("text", "", "Text to synthesize")
	voice := fs.String("voice", "", "Voice name")
	requestID := fs.String("request-id", "", "Correlation request id")
	fs.Parse(args)

	_, factory := setup(*configPath)
	out, err := factory.TextToSpeech().Run(context.Background(),
		gateway.Correlation{RequestID: *requestID},
		capabilities.TextToSpeechInput{Text: *text, Voice: *voice})
	if err != nil {
		fail(err)
	}
	printJSON(out)
}

func runVideo(args []string) {
	fs := flag.NewFlagSet("video", flag.ExitOnError)
	configPath := fs.String("c", "", "Path to config file")
	taskKind := fs.String("task", "t2v", "Video task: t2v, kf2v or r2v")
	prompt := fs.String("prompt", "", "Text prompt")
	firstFrame := fs.String("first-frame", "", "First frame URL (kf2v)")
	lastFrame := fs.String("last-frame", "", "Last frame URL (kf2v)")
	refs := fs.String("refs", "", "Comma-separated reference video URLs (r2v)")
	wait := fs.Bool("wait", false, "Poll until the task finishes")
	requestID := fs.String("request-id", "", "Correlation request id")
	fs.Parse(args)

	_, factory := setup(*configPath)
	corr := gateway.Correlation{RequestID: *requestID}
	ctx := context.Background()

	var handleOut struct {
		TaskID    string
		Status    string
		RequestID string
	}
	var component string

	switch *taskKind {
	case "t2v":
		out, err := factory.TextToVideoSubmit().Run(ctx, corr,
			capabilities.TextToVideoSubmitInput{Prompt: *prompt})
		if err != nil {
			fail(err)
		}
		handleOut.TaskID, handleOut.Status, handleOut.RequestID = out.TaskID, string(out.TaskStatus), out.RequestID
		component = factory.TextToVideoSubmit().Spec().Name
	case "kf2v":
		out, err := factory.KeyframeVideoSubmit().Run(ctx, corr,
			capabilities.KeyframeVideoSubmitInput{Prompt: *prompt, FirstFrameURL: *firstFrame, LastFrameURL: *lastFrame})
		if err != nil {
			fail(err)
		}
		handleOut.TaskID, handleOut.Status, handleOut.RequestID = out.TaskID, string(out.TaskStatus), out.RequestID
		component = factory.KeyframeVideoSubmit().Spec().Name
	case "r2v":
		out, err := factory.VideoToVideoSubmit().Run(ctx, corr,
			capabilities.VideoToVideoSubmitInput{Prompt: *prompt, ReferenceVideoURLs: splitList(*refs)})
		if err != nil {
			fail(err)
		}
		handleOut.TaskID, handleOut.Status, handleOut.RequestID = out.TaskID, string(out.TaskStatus), out.RequestID
		component = factory.VideoToVideoSubmit().Spec().Name
	default:
		fmt.Printf("Unknown video task: %s\n", *taskKind)
		os.Exit(1)
	}

	if !*wait {
		printJSON(handleOut)
		return
	}

	store := tracker.NewStore(0)
	store.Track(task.Handle{
		TaskID:    handleOut.TaskID,
		Status:    task.Status(handleOut.Status),
		RequestID: handleOut.RequestID,
	}, component)

	result, err := pollTask(ctx, factory, corr, handleOut.TaskID, store)
	if err != nil {
		fail(err)
	}
	store.Complete(*result)
	rec, _ := store.Get(handleOut.TaskID)
	printJSON(rec)
}

func runFetch(args []string) {
	fs := flag.NewFlagSet("fetch", flag.ExitOnError)
	configPath := fs.String("c", "", "Path to config file")
	taskID := fs.String("id", "", "Task id")
	requestID := fs.String("request-id", "", "Correlation request id")
	fs.Parse(args)

	_, factory := setup(*configPath)
	out, err := factory.VideoFetch().Run(context.Background(),
		gateway.Correlation{RequestID: *requestID},
		capabilities.VideoFetchInput{TaskID: *taskID})
	if err != nil {
		fail(err)
	}
	printJSON(out)
}

func runPoll(args []string) {
	fs := flag.NewFlagSet("poll", flag.ExitOnError)
	configPath := fs.String("c", "", "Path to config file")
	taskID := fs.String("id", "", "Task id")
	requestID := fs.String("request-id", "", "Correlation request id")
	fs.Parse(args)

	if *taskID == "" {
		fmt.Println("poll requires -id")
		os.Exit(1)
	}

	_, factory := setup(*configPath)
	result, err := pollTask(context.Background(), factory,
		gateway.Correlation{RequestID: *requestID}, *taskID, nil)
	if err != nil {
		fail(err)
	}
	printJSON(result)
}

// runSave downloads artifact URLs into the workspace before they
// expire on the provider side.
func runSave(args []string) {
	fs := flag.NewFlagSet("save", flag.ExitOnError)
	configPath := fs.String("c", "", "Path to config file")
	urls := fs.String("urls", "", "Comma-separated artifact URLs")
	outDir := fs.String("o", "", "Output directory (defaults to the workspace)")
	fs.Parse(args)

	list := splitList(*urls)
	if len(list) == 0 {
		fmt.Println("save requires -urls")
		os.Exit(1)
	}

	cfg, _ := setup(*configPath)
	dir := *outDir
	if dir == "" {
		dir = filepath.Join(cfg.Workspace, "artifacts")
	}

	saved := make([]string, 0, len(list))
	for _, url := range list {
		path, err := utils.FetchArtifact(url, dir)
		if err != nil {
			fail(err)
		}
		saved = append(saved, path)
	}
	printJSON(saved)
}

func runOnboard() {
	configDir := ".bricks"
	if err := os.MkdirAll(configDir, 0755); err != nil {
		fmt.Printf("Error creating config directory: %v\n", err)
		os.Exit(1)
	}

	configFile := filepath.Join(configDir, "config.json")
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		file, err := os.Create(configFile)
		if err != nil {
			fmt.Printf("Warning: Could not create config file: %v\n", err)
		} else {
			defer file.Close()
			encoder := json.NewEncoder(file)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(config.DefaultConfig()); err != nil {
				fmt.Printf("Error writing config file: %v\n", err)
			}
			fmt.Printf("Created config file at %s\n", configFile)
		}
	} else {
		fmt.Printf("Config file already exists at %s\n", configFile)
	}

	fmt.Println("Onboarding complete! Set providers.dashscope.apiKey in the config file or export DASHSCOPE_API_KEY.")
}

// pollTask runs the caller-side polling loop over the shared video
// fetch component.
func pollTask(ctx context.Context, factory *capabilities.Factory, corr gateway.Correlation, taskID string, store *tracker.Store) (*task.GenerationResult, error) {
	fetch := factory.VideoFetch()
	poller := polling.New(func(ctx context.Context, corr gateway.Correlation, id string) (gateway.FetchResult, error) {
		out, err := fetch.Run(ctx, corr, capabilities.VideoFetchInput{TaskID: id})
		if err != nil {
			return gateway.FetchResult{}, err
		}
		res := gateway.FetchResult{TaskID: out.TaskID, Status: out.TaskStatus}
		if out.TaskStatus == task.StatusSucceeded {
			res.Result = &task.GenerationResult{
				TaskID:    out.TaskID,
				Status:    out.TaskStatus,
				Artifacts: out.Results,
				RequestID: out.RequestID,
			}
		}
		return res, nil
	}, polling.DefaultConfig())

	result, err := poller.Wait(ctx, corr, taskID)
	if err != nil {
		if store != nil {
			var terminal *task.TerminalTaskFailure
			if errors.As(err, &terminal) {
				store.Fail(taskID, terminal.Status)
			} else {
				store.Fail(taskID, task.StatusUnknown)
			}
		}
		return nil, err
	}
	return result, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
