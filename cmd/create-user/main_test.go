package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestAskMissing(t *testing.T) {
	cases := []struct {
		name      string
		given     owner
		input     string
		want      owner
		wantErr   bool
		wantAsked []string
	}{
		{
			name:      "everything prompted",
			input:     " sam \nsam@example.com\nhunter2\n",
			want:      owner{Username: "sam", Email: "sam@example.com", Password: "hunter2"},
			wantAsked: []string{"Username: ", "Email: ", "Password: "},
		},
		{
			name:      "username flag skips email",
			given:     owner{Username: "sam"},
			input:     "hunter2\n",
			want:      owner{Username: "sam", Password: "hunter2"},
			wantAsked: []string{"Password: "},
		},
		{
			name:      "password without trailing newline",
			given:     owner{Username: "sam", Email: "s@x.io"},
			input:     "hunter2",
			want:      owner{Username: "sam", Email: "s@x.io", Password: "hunter2"},
			wantAsked: []string{"Password: "},
		},
		{name: "blank username", input: "  \n\nhunter2\n", wantErr: true},
		{name: "blank password", given: owner{Username: "sam"}, input: "\n", wantErr: true},
		{name: "closed stdin", input: "", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.given
			out := &bytes.Buffer{}
			err := askMissing(strings.NewReader(tc.input), out, &got)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("askMissing = %+v, want an error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("askMissing: %v", err)
			}
			if got != tc.want {
				t.Errorf("owner = %+v, want %+v", got, tc.want)
			}
			if prompts := out.String(); prompts != strings.Join(tc.wantAsked, "") {
				t.Errorf("prompts = %q, want %q", prompts, strings.Join(tc.wantAsked, ""))
			}
		})
	}
}

func TestCreateUserCmd_RejectsNonPostgres(t *testing.T) {
	t.Setenv("DB_URL", "")
	cmd := newCreateUserCmd()
	cmd.SetIn(strings.NewReader("sam\n\nhunter2\n"))
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--db-url", "sqlite:nutritrack.db"})

	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "postgres") {
		t.Fatalf("Execute err = %v, want a postgres URL error", err)
	}
}
