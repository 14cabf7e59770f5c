package cmd

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/sourcegraph/jsonrpc2"
	"github.com/spf13/cobra"

	"github.com/glint-lang/glint/internal/diag"
	"github.com/glint-lang/glint/internal/parser"
)

var lspCmd = &cobra.Command{
	Use:   "lsp",
	Short: "Run a minimal Glint language server over stdio",
	Long: `Serve textDocument/didOpen and didChange by publishing parse
diagnostics (the document is parsed, not evaluated, so no eval errors
are reported), the smallest useful language server for an embedded
scripting language - grounded on onflow-cadence/languageserver's
jsonrpc2-based diagnostics handler.`,
	RunE: runLSP,
}

func init() {
	rootCmd.AddCommand(lspCmd)
}

func runLSP(_ *cobra.Command, _ []string) error {
	stream := jsonrpc2.NewBufReadWriteCloser(stdioStream{})
	conn := jsonrpc2.NewConn(context.Background(), stream, jsonrpc2.HandlerWithError(handleLSPRequest))
	<-conn.DisconnectNotify()
	return nil
}

type stdioStream struct{}

func (stdioStream) Read(p []byte) (int, error)  { return os.Stdin.Read(p) }
func (stdioStream) Write(p []byte) (int, error) { return os.Stdout.Write(p) }
func (stdioStream) Close() error                { return nil }

type textDocumentItem struct {
	URI  string `json:"uri"`
	Text string `json:"text"`
}

type didOpenParams struct {
	TextDocument textDocumentItem `json:"textDocument"`
}

type contentChange struct {
	Text string `json:"text"`
}

type didChangeParams struct {
	TextDocument struct {
		URI string `json:"uri"`
	} `json:"textDocument"`
	ContentChanges []contentChange `json:"contentChanges"`
}

type lspPosition struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

type lspRange struct {
	Start lspPosition `json:"start"`
	End   lspPosition `json:"end"`
}

type lspDiagnostic struct {
	Range    lspRange `json:"range"`
	Severity int      `json:"severity"`
	Message  string   `json:"message"`
}

type publishDiagnosticsParams struct {
	URI         string          `json:"uri"`
	Diagnostics []lspDiagnostic `json:"diagnostics"`
}

const severityError = 1

func handleLSPRequest(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (interface{}, error) {
	switch req.Method {
	case "initialize":
		return map[string]interface{}{
			"capabilities": map[string]interface{}{
				"textDocumentSync": 1,
			},
		}, nil
	case "textDocument/didOpen":
		var p didOpenParams
		if err := json.Unmarshal(*req.Params, &p); err != nil {
			return nil, err
		}
		publishDiagnostics(ctx, conn, p.TextDocument.URI, p.TextDocument.Text)
		return nil, nil
	case "textDocument/didChange":
		var p didChangeParams
		if err := json.Unmarshal(*req.Params, &p); err != nil {
			return nil, err
		}
		if len(p.ContentChanges) == 0 {
			return nil, nil
		}
		publishDiagnostics(ctx, conn, p.TextDocument.URI, p.ContentChanges[len(p.ContentChanges)-1].Text)
		return nil, nil
	case "shutdown":
		return nil, nil
	case "exit":
		return nil, nil
	default:
		return nil, nil
	}
}

func publishDiagnostics(ctx context.Context, conn *jsonrpc2.Conn, uri, src string) {
	diagnostics := []lspDiagnostic{}
	if _, err := parser.Parse(uri, src); err != nil {
		if pe, ok := err.(*diag.ParseError); ok {
			diagnostics = append(diagnostics, lspDiagnostic{
				Range:    posRange(pe.Pos.Line, pe.Pos.Column),
				Severity: severityError,
				Message:  pe.Reason,
			})
		}
	}
	_ = conn.Notify(ctx, "textDocument/publishDiagnostics", &publishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func posRange(line, col int) lspRange {
	start := lspPosition{Line: nonNegative(line - 1), Character: nonNegative(col - 1)}
	end := lspPosition{Line: start.Line, Character: start.Character + 1}
	return lspRange{Start: start, End: end}
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

var _ io.ReadWriteCloser = stdioStream{}
