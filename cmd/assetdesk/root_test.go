package main

import "testing"

func TestRootCommand_RegistersCommands(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"serve", "migrate", "expire-requests", "users"} {
		if cmd, _, err := rootCmd.Find([]string{name}); err != nil || cmd == nil || cmd.Name() != name {
			t.Fatalf("%s command not registered: cmd=%v err=%v", name, cmd, err)
		}
	}
}

func TestCommandUsesStructuredLogging(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want bool
	}{
		{name: "serve", args: []string{"serve"}, want: true},
		{name: "migrate", args: []string{"migrate"}, want: true},
		{name: "expire-requests", args: []string{"expire-requests"}, want: true},
		{name: "users bootstrap-admin", args: []string{"users", "bootstrap-admin"}, want: false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cmd, _, err := rootCmd.Find(tc.args)
			if err != nil {
				t.Fatalf("Find(%v) error = %v", tc.args, err)
			}
			if cmd == nil {
				t.Fatalf("Find(%v) returned nil command", tc.args)
			}

			if got := commandUsesStructuredLogging(cmd); got != tc.want {
				t.Fatalf("commandUsesStructuredLogging(%q) = %v, want %v", cmd.CommandPath(), got, tc.want)
			}
		})
	}
}

func TestResolveBootstrapPasswordFlagConflicts(t *testing.T) {
	restore := func() {
		bootstrapAdminPassword = ""
		bootstrapAdminPasswordStdin = false
		bootstrapAdminGeneratePasswd = false
	}
	t.Cleanup(restore)

	cases := []struct {
		name     string
		password string
		stdin    bool
		generate bool
	}{
		{name: "stdin and generate", stdin: true, generate: true},
		{name: "stdin and password", stdin: true, password: "x"},
		{name: "generate and password", generate: true, password: "x"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			restore()
			bootstrapAdminPassword = tc.password
			bootstrapAdminPasswordStdin = tc.stdin
			bootstrapAdminGeneratePasswd = tc.generate

			if _, _, err := resolveBootstrapPassword(bootstrapAdminCmd); err == nil {
				t.Fatal("expected an error for conflicting flags")
			}
		})
	}
}

func TestGeneratePassword(t *testing.T) {
	t.Parallel()

	if _, err := generatePassword(8); err == nil {
		t.Fatal("expected an error for short length")
	}

	got, err := generatePassword(24)
	if err != nil {
		t.Fatalf("generatePassword(24) error = %v", err)
	}
	if len(got) != 24 {
		t.Fatalf("len = %d, want 24", len(got))
	}
}
