package lesson

import (
	"os"
	"path/filepath"
	"testing"
)

const walletModuleYAML = `version: 1
id: wallets
title: "  Crypto Wallets "
summary: Keys, seeds and custody.
level: Beginner
minutes: 10
tags: [Custody, wallets, custody]
prerequisites: [basics]
sections:
  - id: keys
    title: Keys
    body: A wallet holds keys, not coins.
glossary:
  " Seed Phrase ": "  Words that encode a master key. "
quiz:
  questions:
    - question: What does a wallet store?
      options: ["Coins", "Keys"]
      correct: 1
      explanation: Coins live on chain.
`

const basicsModuleYAML = `version: 1
id: basics
title: Blockchain Basics
summary: Blocks and ledgers.
minutes: 5
tags: [ledger]
quiz:
  title: Basics quiz
  questions:
    - id: b1
      question: What links blocks?
      options: ["Hashes", "Names", "Dates"]
      correct: 0
`

func writeFile(t *testing.T, dir, name, payload string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}
