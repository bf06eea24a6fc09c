// Package help holds the built-in quick start guide.
package help

// QuickstartYAML is printed by `sumz quickstart`.
const QuickstartYAML = `# sumz Quick Start

providers:
  rapidapi: "Hosted summarizer (default). Needs SUMZ_RAPIDAPI_KEY"
  extractive: "Local, no key. Keeps the lead sentences, or the most frequent ones with extractive.strategy: frequency"
  openai: "Chat model summary. Needs OPENAI_API_KEY"

commands:
  interactive: |
    sumz

  summarize: |
    sumz summarize "https://example.com/article"

  summarize_local: |
    sumz --provider extractive summarize "https://example.com/article"

  list_history: |
    sumz history --limit 10

  show_item: |
    sumz show 1

  copy_url: |
    sumz copy 1

  scripting: |
    sumz summarize --format json "https://example.com/article" | jq -r .summary

tui_keys:
  enter: "Summarize the URL (input) or show the highlighted article (history)"
  tab: "Switch between the URL input and the history list"
  j_k: "Move through history"
  c: "Copy the highlighted URL"
  esc: "Quit"

config:
  file: "sumz.yaml, or the path in SUMZ_CONFIG / --config"
  env: "SUMZ_RAPIDAPI_KEY, OPENAI_API_KEY, SUMZ_PROVIDER, SUMZ_DB"
  dotenv: ".env in the working directory is loaded when present"

storage:
  - "History is one JSON array under the key 'articles', most recent first"
  - "sqlite (default): sumz.db next to the binary, or SUMZ_DB"
  - "file: <store.path>/articles.json"
  - "--ephemeral keeps history in memory for one run"

error_behavior:
  - "Malformed URLs: rejected before any request"
  - "Failed summaries leave history untouched"
  - "Exit codes: 0=success, 1=bad input, 2=runtime failure"
`
