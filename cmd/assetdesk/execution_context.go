package main

import (
	"sync"

	"github.com/spf13/cobra"
)

// annotationStructuredLog marks commands whose output is machine-read; their
// fatal-path errors go through the structured logger instead of plain stderr.
const annotationStructuredLog = "structured-log"

type commandExecutionContext struct {
	CommandPath       string
	UsesStructuredLog bool
}

var (
	executionContextMu sync.Mutex
	executionContext   commandExecutionContext
)

func currentCommandExecutionContext() commandExecutionContext {
	executionContextMu.Lock()
	defer executionContextMu.Unlock()
	return executionContext
}

func setCommandExecutionContext(ctx commandExecutionContext) {
	executionContextMu.Lock()
	defer executionContextMu.Unlock()
	executionContext = ctx
}

func resetCommandExecutionContext() {
	setCommandExecutionContext(commandExecutionContext{})
}

func commandUsesStructuredLogging(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if v, ok := c.Annotations[annotationStructuredLog]; ok {
			return v == "true"
		}
	}
	return false
}

func structuredLogAnnotations() map[string]string {
	return map[string]string{annotationStructuredLog: "true"}
}
