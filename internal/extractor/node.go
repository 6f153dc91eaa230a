package extractor

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	json "github.com/goccy/go-json"
)

// nodeHarness is the one-shot script node runs to load a module and print
// its metadata export as a single JSON value on stdout. Any deviation is
// reported on stderr with a non-zero exit.
const nodeHarness = `
const path = require("path");
const fs = require("fs");

function fatal(msg) {
  console.error("stratreg: " + msg);
  process.exit(1);
}

if (process.argv.length < 2) {
  fatal("missing module argument");
}

const target = path.resolve(process.argv[1]);
if (!fs.existsSync(target)) {
  fatal("module not found: " + target);
}

let exports;
try {
  exports = require(target);
} catch (err) {
  fatal("failed to execute " + target + ": " + err.message);
}

if (!exports || typeof exports !== "object" || !exports.metadata) {
  fatal("metadata export missing in " + target);
}

try {
  console.log(JSON.stringify(exports.metadata));
} catch (err) {
  fatal("metadata serialization failed for " + target + ": " + err.message);
}
`

// NodeExtractor executes modules in an external node process. Each module
// load spawns one process and waits for it to exit.
type NodeExtractor struct {
	binary string
}

// NewNodeExtractor creates an extractor that shells out to node.
func NewNodeExtractor() *NodeExtractor {
	return &NodeExtractor{binary: "node"}
}

// Extract runs the harness against the module at path.
func (e *NodeExtractor) Extract(path string) (map[string]interface{}, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("module not found: %s: %w", path, err)
	}

	cmd := exec.Command(e.binary, "-e", nodeHarness, path)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, fmt.Errorf("node binary not found (required to load metadata exports): %w", err)
		}
		diag := strings.TrimSpace(stderr.String())
		if diag == "" {
			diag = fmt.Sprintf("metadata extraction failed for %s", path)
		}
		return nil, errors.New(diag)
	}

	var meta map[string]interface{}
	if err := json.Unmarshal(stdout.Bytes(), &meta); err != nil {
		return nil, fmt.Errorf("metadata export invalid for %s: %w", path, err)
	}
	return meta, nil
}
