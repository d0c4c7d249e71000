package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const defaultConfig = `# primer configuration
lessons_dir: lessons
data_dir: .primer/data
# file | sqlite | memory
store: file
history: true
pass_threshold: 70
# auto | live | plain
ui: auto
log_level: info
log_format: text
server:
  addr: 127.0.0.1:5000
`

const sampleLesson = `version: 1
id: blockchain-basics
title: Blockchain Basics
summary: What a block is and why the chain is hard to rewrite.
level: beginner
minutes: 8
tags: [blockchain, fundamentals]
sections:
  - id: blocks
    title: Blocks
    body: A block bundles transactions with the hash of the previous block.
  - id: consensus
    title: Consensus
    body: Nodes agree on one history by following shared rules.
glossary:
  Hash: A fixed-size fingerprint of data.
  Node: A computer that keeps a copy of the ledger.
quiz:
  title: Blockchain Basics Quiz
  questions:
    - id: links
      question: What links each block to the one before it?
      options: ["A timestamp", "The previous block's hash", "The miner's name"]
      correct: 1
      explanation: Changing an old block changes its hash and breaks every later link.
    - id: ledger
      question: Who keeps a copy of a public blockchain ledger?
      options: ["Only the bank", "Every full node", "Nobody"]
      correct: 1
      explanation: Full nodes each store and verify the whole chain.
`

// Scaffold writes a default config and a sample lesson under root.
// Existing files are never overwritten.
func Scaffold(root string) ([]string, error) {
	if root == "" {
		return nil, fmt.Errorf("root is required")
	}
	targets := []struct {
		path    string
		content string
	}{
		{ConfigPath(root), defaultConfig},
		{filepath.Join(root, DefaultLessonsDir, "01-blockchain-basics.yml"), sampleLesson},
	}
	for _, target := range targets {
		if info, err := os.Stat(target.path); err == nil {
			if info.IsDir() {
				return nil, fmt.Errorf("path %q is a directory", target.path)
			}
			return nil, fmt.Errorf("file already exists at %q", target.path)
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("stat %q: %w", target.path, err)
		}
	}
	written := make([]string, 0, len(targets))
	for _, target := range targets {
		if err := os.MkdirAll(filepath.Dir(target.path), 0o755); err != nil {
			return written, fmt.Errorf("create directory: %w", err)
		}
		if err := os.WriteFile(target.path, []byte(target.content), 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", filepath.Base(target.path), err)
		}
		written = append(written, target.path)
	}
	return written, nil
}
