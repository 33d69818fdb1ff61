// Package shutdown coordinates graceful process termination.
//
// A Handler waits for SIGINT/SIGTERM, an explicit Trigger or the end of a
// context, then runs the registered hooks in reverse registration order
// under a shared timeout:
//
//	h := shutdown.NewHandler(10 * time.Second)
//	h.OnShutdown("redis", srv.Shutdown)
//	err := h.Wait(ctx)
package shutdown
