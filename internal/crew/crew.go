package crew

import (
	"context"
	"fmt"
	"strings"

	"bitcoin-analyst/internal/interfaces"
	"bitcoin-analyst/internal/logger"
	"bitcoin-analyst/internal/trace"
)

// Agent is a role-labeled prompt configuration, not a process or thread.
type Agent struct {
	Role      string
	Goal      string
	Backstory string
}

// systemPrompt renders the agent persona sent as the system message.
func (a *Agent) systemPrompt() string {
	return fmt.Sprintf("You are %s. %s Your goal: %s", a.Role, a.Backstory, a.Goal)
}

// Tool gathers external input for a task before the model is called. It
// receives the combined output of the task's context tasks.
type Tool func(ctx context.Context, contextText string) (string, error)

// Task is a prompt template chained to prior tasks' outputs.
type Task struct {
	Name           string
	Description    string
	ExpectedOutput string
	Agent          *Agent
	Context        []*Task // earlier tasks whose outputs feed this one
	Tool           Tool
}

// Crew runs tasks strictly sequentially. The result of the final task is the
// crew result.
type Crew struct {
	completer interfaces.Completer
	tasks     []*Task
	outputs   map[string]string
}

// New validates the task chain and creates a crew. Every task needs an
// agent, and context may reference only earlier tasks.
func New(completer interfaces.Completer, tasks ...*Task) (*Crew, error) {
	if completer == nil {
		return nil, fmt.Errorf("crew: completer is required")
	}
	if len(tasks) == 0 {
		return nil, fmt.Errorf("crew: at least one task is required")
	}

	position := make(map[*Task]int, len(tasks))
	names := make(map[string]bool, len(tasks))
	for i, t := range tasks {
		if t.Name == "" {
			return nil, fmt.Errorf("crew: task %d has no name", i)
		}
		if t.Agent == nil {
			return nil, fmt.Errorf("crew: task '%s' has no agent", t.Name)
		}
		if _, dup := position[t]; dup {
			return nil, fmt.Errorf("crew: task '%s' listed twice", t.Name)
		}
		// Outputs are keyed by name, so a collision would overwrite results
		if names[t.Name] {
			return nil, fmt.Errorf("crew: task name '%s' used by more than one task", t.Name)
		}
		names[t.Name] = true
		for _, dep := range t.Context {
			pos, seen := position[dep]
			if !seen || pos >= i {
				return nil, fmt.Errorf("crew: task '%s' references context task '%s' that does not run before it", t.Name, dep.Name)
			}
		}
		position[t] = i
	}

	return &Crew{
		completer: completer,
		tasks:     tasks,
		outputs:   make(map[string]string, len(tasks)),
	}, nil
}

// Kickoff executes the pipeline and returns the final task's output.
func (c *Crew) Kickoff(ctx context.Context) (string, error) {
	var result string

	for _, task := range c.tasks {
		out, err := c.runTask(ctx, task)
		if err != nil {
			return "", fmt.Errorf("task '%s' failed: %w", task.Name, err)
		}
		c.outputs[task.Name] = out
		result = out
		logger.Stage(ctx, task.Name, len(out))
	}

	return result, nil
}

// Outputs returns every completed task's output keyed by task name.
func (c *Crew) Outputs() map[string]string {
	out := make(map[string]string, len(c.outputs))
	for k, v := range c.outputs {
		out[k] = v
	}
	return out
}

func (c *Crew) runTask(ctx context.Context, task *Task) (string, error) {
	ctx, span := trace.StartStageSpan(ctx, task.Name)
	defer span.End()

	var sb strings.Builder
	sb.WriteString(task.Description)

	contextText := c.contextFor(task)
	if contextText != "" {
		sb.WriteString("\n\nContext from previous tasks:\n")
		sb.WriteString(contextText)
	}

	if task.Tool != nil {
		toolOut, err := task.Tool(ctx, contextText)
		if err != nil {
			// The pipeline degrades rather than aborts when a tool fails;
			// the model is told what went wrong.
			logger.ErrorWithErr(ctx, "Task tool failed", err, "task", task.Name)
			toolOut = "Tool error: " + err.Error()
		}
		sb.WriteString("\n\nTool output:\n")
		sb.WriteString(toolOut)
	}

	if task.ExpectedOutput != "" {
		sb.WriteString("\n\nExpected output:\n")
		sb.WriteString(task.ExpectedOutput)
	}

	out, err := c.completer.Complete(ctx, task.Agent.systemPrompt(), sb.String())
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(out) == "" {
		return "", fmt.Errorf("model returned empty output")
	}

	return out, nil
}

func (c *Crew) contextFor(task *Task) string {
	parts := make([]string, 0, len(task.Context))
	for _, dep := range task.Context {
		if out, ok := c.outputs[dep.Name]; ok && out != "" {
			parts = append(parts, fmt.Sprintf("--- %s ---\n%s", dep.Name, out))
		}
	}
	return strings.Join(parts, "\n\n")
}
