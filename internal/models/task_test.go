package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTaskStatusIsTerminal(t *testing.T) {
	require.True(t, TaskStatusDone.IsTerminal())
	require.True(t, TaskStatusCancelled.IsTerminal())

	require.False(t, TaskStatusBacklog.IsTerminal())
	require.False(t, TaskStatusTodo.IsTerminal())
	require.False(t, TaskStatusInProgress.IsTerminal())
	require.False(t, TaskStatusInReview.IsTerminal())
}

func TestTaskStatusCanTransition(t *testing.T) {
	nonTerminal := []TaskStatus{TaskStatusBacklog, TaskStatusTodo, TaskStatusInProgress, TaskStatusInReview}

	// Any non-terminal state reaches any other state, including terminal ones.
	for _, from := range nonTerminal {
		for _, to := range []TaskStatus{TaskStatusBacklog, TaskStatusTodo, TaskStatusInProgress, TaskStatusInReview, TaskStatusDone, TaskStatusCancelled} {
			if from == to {
				require.False(t, from.CanTransition(to))
				continue
			}
			require.True(t, from.CanTransition(to), "%s -> %s", from, to)
		}
	}

	// Terminal states never transition directly; reopening is explicit.
	require.False(t, TaskStatusDone.CanTransition(TaskStatusTodo))
	require.False(t, TaskStatusDone.CanTransition(TaskStatusInProgress))
	require.False(t, TaskStatusCancelled.CanTransition(TaskStatusTodo))

	// Unknown targets are rejected.
	require.False(t, TaskStatusTodo.CanTransition(TaskStatus("archived")))
}
