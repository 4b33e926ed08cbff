//go:build integration

package itest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"
)

const cliTimeout = 30 * time.Second

type robustCase struct {
	name            string
	args            func(t *testing.T, repoRoot string) []string
	env             map[string]string
	wantContains    []string
	wantNotContains []string
}

type cliRunResult struct {
	exitCode int
	output   string
}

const sampleURL = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

func TestRobustness_ArgsValidation(t *testing.T) {
	repoRoot := mustRepoRoot(t)

	cases := []robustCase{
		{
			name: "clip no args",
			args: staticArgs("clip", "--desc", "rate hikes"),
			wantContains: []string{
				"accepts 1 arg(s), received 0",
			},
		},
		{
			name: "clip too many args",
			args: staticArgs("clip", sampleURL, "extra", "--desc", "rate hikes"),
			wantContains: []string{
				"accepts 1 arg(s), received 2",
			},
		},
		{
			name: "clip missing description",
			args: staticArgs("clip", sampleURL),
			wantContains: []string{
				`required flag(s) "desc" not set`,
			},
		},
		{
			name: "unknown flag",
			args: staticArgs("clip", sampleURL, "--desc", "rate hikes", "--wat"),
			wantContains: []string{
				"unknown flag: --wat",
			},
		},
		{
			name: "topics no args",
			args: staticArgs("topics"),
			wantContains: []string{
				"accepts 1 arg(s), received 0",
			},
		},
	}

	runRobustCases(t, repoRoot, cases)
}

func TestRobustness_ConfigValidation(t *testing.T) {
	repoRoot := mustRepoRoot(t)

	cases := []robustCase{
		{
			name: "relative video url",
			args: staticArgs("clip", "watch?v=abc", "--desc", "rate hikes"),
			env: map[string]string{
				"OPENAI_API_KEY": "dummy",
			},
			wantContains: []string{
				"config: invalid video url",
			},
		},
		{
			name: "blank description",
			args: staticArgs("clip", sampleURL, "--desc", "   "),
			env: map[string]string{
				"OPENAI_API_KEY": "dummy",
			},
			wantContains: []string{
				"must not be blank",
			},
		},
		{
			name: "missing api key",
			args: staticArgs("clip", sampleURL, "--desc", "rate hikes"),
			env: map[string]string{
				"OPENAI_API_KEY": "",
			},
			wantContains: []string{
				"openai api key is required",
			},
		},
		{
			name: "bad aspect ratio",
			args: staticArgs("clip", sampleURL, "--desc", "rate hikes", "--aspect", "4:3"),
			env: map[string]string{
				"OPENAI_API_KEY": "dummy",
			},
			wantContains: []string{
				"aspect ratio must be 16:9 or 9:16",
			},
		},
		{
			name: "bad quality",
			args: staticArgs("clip", sampleURL, "--desc", "rate hikes", "--quality", "ludicrous"),
			env: map[string]string{
				"OPENAI_API_KEY": "dummy",
			},
			wantContains: []string{
				"quality must be fast, medium or high",
			},
		},
		{
			name: "missing config file",
			args: func(t *testing.T, _ string) []string {
				t.Helper()
				return []string{
					"clip", sampleURL,
					"--desc", "rate hikes",
					"--config", filepath.Join(t.TempDir(), "nope.yaml"),
				}
			},
			env: map[string]string{
				"OPENAI_API_KEY": "dummy",
			},
			wantContains: []string{
				"load config:",
			},
			wantNotContains: []string{
				"panic",
			},
		},
	}

	runRobustCases(t, repoRoot, cases)
}

func runRobustCases(t *testing.T, repoRoot string, cases []robustCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := runCLI(t, repoRoot, tc.args(t, repoRoot), tc.env)
			if res.exitCode == 0 {
				t.Fatalf("expected non-zero exit code, got 0\noutput:\n%s", res.output)
			}
			for _, want := range tc.wantContains {
				if !strings.Contains(res.output, want) {
					t.Fatalf("expected output to contain %q\noutput:\n%s", want, res.output)
				}
			}
			for _, notWant := range tc.wantNotContains {
				if strings.Contains(res.output, notWant) {
					t.Fatalf("expected output to not contain %q\noutput:\n%s", notWant, res.output)
				}
			}
		})
	}
}

func runCLI(t *testing.T, repoRoot string, args []string, env map[string]string) cliRunResult {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), cliTimeout)
	defer cancel()

	cmdArgs := append([]string{"run", "./cmd/econclip"}, args...)
	cmd := exec.CommandContext(ctx, "go", cmdArgs...)
	cmd.Dir = repoRoot
	cmd.Env = mergeEnv(
		os.Environ(),
		map[string]string{
			"NO_COLOR": "1",
			"TERM":     "dumb",
		},
		env,
	)

	out, err := cmd.CombinedOutput()
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		t.Fatalf("command timed out after %s: go %s", cliTimeout, strings.Join(cmdArgs, " "))
	}

	res := cliRunResult{output: string(out)}
	if err == nil {
		res.exitCode = 0
		return res
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.exitCode = exitErr.ExitCode()
		return res
	}

	t.Fatalf("run command: %v\noutput:\n%s", err, string(out))
	return cliRunResult{}
}

func mergeEnv(base []string, overrides ...map[string]string) []string {
	env := make(map[string]string, len(base))
	for _, kv := range base {
		i := strings.IndexByte(kv, '=')
		if i <= 0 {
			continue
		}
		env[kv[:i]] = kv[i+1:]
	}

	for _, set := range overrides {
		for k, v := range set {
			env[k] = v
		}
	}

	out := make([]string, 0, len(env))
	for k, v := range env {
		out = append(out, fmt.Sprintf("%s=%s", k, v))
	}
	sort.Strings(out)
	return out
}

func mustRepoRoot(t *testing.T) string {
	t.Helper()

	repoRoot, err := findRepoRoot()
	if err != nil {
		t.Fatalf("repo root: %v", err)
	}
	return repoRoot
}

func staticArgs(args ...string) func(t *testing.T, _ string) []string {
	clone := append([]string(nil), args...)
	return func(t *testing.T, _ string) []string {
		t.Helper()
		return append([]string(nil), clone...)
	}
}
