package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/aanand-mishra/student-records/internal/config"
	"github.com/aanand-mishra/student-records/internal/storage"
	"github.com/aanand-mishra/student-records/internal/types"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a scripted add/find/modify/delete walkthrough",
	Long: `Run a scripted walkthrough against a fresh store: add three students,
look one up, modify it, delete another, trigger both failure kinds, list
the result and clear the store.

Results go to stdout; the storage call log goes to stderr.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		store, closeStore, err := newStore(cfg, setupLogger(cfg.Env, os.Stderr))
		if err != nil {
			return fmt.Errorf("initialise storage: %w", err)
		}
		defer closeStore()

		return runDemo(store, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

func runDemo(store storage.Storage, out io.Writer) error {
	step := func(format string, a ...any) {
		fmt.Fprintf(out, format+"\n", a...)
	}

	step("step 1: add three students")
	var added []types.Student
	for _, in := range []types.Student{
		{Name: "学生A", Phone: "11111111111"},
		{Name: "学生B", Phone: "22222222222"},
		{Name: "学生C", Phone: "33333333333"},
	} {
		s, err := store.AddStudent(&in)
		if err != nil {
			return fmt.Errorf("add %s: %w", in.Name, err)
		}
		step("  added %s", s)
		added = append(added, s)
	}

	step("step 2: find student %d", added[0].ID)
	found, err := store.FindStudent(added[0].ID)
	if err != nil {
		return fmt.Errorf("find: %w", err)
	}
	step("  found %s", found)

	step("step 3: modify student %d", added[1].ID)
	modified, err := store.ModifyStudent(&types.Student{
		ID:    added[1].ID,
		Name:  added[1].Name + "修改",
		Phone: "22222222220",
	})
	if err != nil {
		return fmt.Errorf("modify: %w", err)
	}
	step("  modified %s", modified)

	step("step 4: delete student %d", added[2].ID)
	if err := store.DeleteStudent(added[2].ID); err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	step("  deleted")

	step("step 5: invalid operations")
	_, err = store.AddStudent(&types.Student{Name: "", Phone: "13800138000"})
	if !errors.Is(err, storage.ErrInvalidData) {
		return fmt.Errorf("blank name: want ErrInvalidData, got %v", err)
	}
	step("  rejected: %v", err)
	_, err = store.FindStudent(999)
	if !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("missing id: want ErrNotFound, got %v", err)
	}
	step("  rejected: %v", err)

	step("step 6: list all")
	all, err := store.ListStudents()
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}
	for _, s := range all {
		step("  %s", s)
	}
	step("  total %d", len(all))

	step("step 7: clear")
	if err := store.ClearStudents(); err != nil {
		return fmt.Errorf("clear: %w", err)
	}
	step("  cleared")
	return nil
}
