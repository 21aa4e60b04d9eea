// Package topics adds file-based help topics to a Cobra CLI: markdown
// or text files in a directory become `seqfile help <topic>` entries,
// rendered for the terminal.
package topics

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

// Topic is one loaded help file.
type Topic struct {
	Name     string
	FilePath string
	Content  string
}

// Manager holds the topics scanned from a directory.
type Manager struct {
	topics       map[string]*Topic
	originalHelp func(*cobra.Command, []string)
	renderer     Renderer
}

// New scans dir for .md and .txt files and returns a Manager over
// them. A missing directory is not an error; it just yields no topics.
func New(dir string) (*Manager, error) {
	m := &Manager{
		topics:   make(map[string]*Topic),
		renderer: NewGlamourRenderer(),
	}

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return m, nil
	}

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		ext := filepath.Ext(path)
		if ext != ".md" && ext != ".txt" {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(filepath.Base(path), ext)
		m.topics[name] = &Topic{Name: name, FilePath: path, Content: string(content)}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan topics: %w", err)
	}
	return m, nil
}

// Get retrieves a topic by name.
func (m *Manager) Get(name string) (*Topic, bool) {
	t, ok := m.topics[name]
	return t, ok
}

// List returns all topic names, sorted.
func (m *Manager) List() []string {
	names := make([]string, 0, len(m.topics))
	for name := range m.topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Initialize replaces rootCmd's help command with one that also knows
// the topics found in dir.
func Initialize(rootCmd *cobra.Command, dir string) error {
	m, err := New(dir)
	if err != nil {
		return err
	}

	m.originalHelp = rootCmd.HelpFunc()

	helpCmd := &cobra.Command{
		Use:   "help [command or topic]",
		Short: "Help about any command or topic",
		Long: `Help provides help for any command or topic.
Type ` + rootCmd.Name() + ` help topics to see the available topics.`,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) == 0 {
				m.originalHelp(rootCmd, nil)
				return
			}
			if args[0] == "topics" {
				m.printTopicList(rootCmd.Name())
				return
			}
			if topic, ok := m.Get(args[0]); ok {
				fmt.Print(m.renderer.Render(topic.Content, filepath.Ext(topic.FilePath)))
				return
			}
			m.originalHelp(rootCmd, args)
		},
	}

	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == "help" {
			rootCmd.RemoveCommand(cmd)
			break
		}
	}
	rootCmd.AddCommand(helpCmd)

	return nil
}

func (m *Manager) printTopicList(appName string) {
	names := m.List()
	if len(names) == 0 {
		fmt.Println("No help topics available.")
		return
	}
	fmt.Println("Available help topics:")
	for _, name := range names {
		fmt.Printf("  %s\n", name)
	}
	fmt.Printf("\nUse '%s help <topic>' to read about a specific topic.\n", appName)
}
