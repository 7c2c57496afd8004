// Package dispatcher routes MCP tool-calls to handler functions. After a
// handler returns a plan, the dispatcher calls the operation queue's
// wait_until_idle with a 30-second cap before returning the response, so a
// handler's asynchronous consequences (batch executions it scheduled) have
// settled by the time the caller sees the plan.
package dispatcher
