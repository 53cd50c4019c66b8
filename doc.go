// Package actionbridge runs precompiled action binaries behind a uniform
// JSON invocation contract for function-as-a-service hosts.
//
// A Bridge wraps exactly one action executable. For each request the host
// hands over, the bridge starts the action, writes the request as JSON to its
// standard input, closes the stream, collects standard output and standard
// error, and returns an envelope holding a single string:
//
//	{"body": "..."}
//
// # Basic Usage
//
//	bridge, err := actionbridge.New(ctx,
//	    actionbridge.WithBinary("/opt/actions/add-l"),
//	    actionbridge.WithTimeout(30*time.Second),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	env := bridge.Invoke(ctx, map[string]any{"param1": 1, "param2": 2})
//	fmt.Println(env.Body) // Mobilenet output:\n{"result": 3}
//
// A request whose ping field is true is answered with {"body":"pong"}
// without starting a process, so hosts can run cheap liveness checks.
//
// # Envelope Bodies
//
// On success the body is the action's standard output behind the output
// prefix, so it is JSON text inside a JSON string and hosts decode it twice.
// Failures use fixed markers behind the same prefix:
//
//	Failed to serialize input JSON: <error>
//	Invalid input JSON: <error>
//	Failed to execute binary: <error>
//	Binary exited with error: <stderr>
//	Binary timed out after <duration>
//
// Invoke never returns an error and never panics. Go callers that need to
// tell outcomes apart without parsing the body use Execute, which returns a
// Result with an Outcome and the typed error:
//
//	result := bridge.Execute(ctx, request)
//	if procErr, ok := errors.AsType[*actionbridge.ProcessError](result.Err); ok {
//	    log.Printf("action exited %d: %s", procErr.ExitCode, procErr.Stderr)
//	}
//
// # Logging
//
// By default the bridge is silent. Use WithLogger for operation tracking:
//
//	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
//	bridge, err := actionbridge.New(ctx,
//	    actionbridge.WithBinary("/opt/actions/add-l"),
//	    actionbridge.WithLogger(logger),
//	)
package actionbridge
