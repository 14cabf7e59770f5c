package cmd

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/glint-lang/glint/pkg/glint"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a remote-eval websocket server",
	Long: `Accept websocket connections and evaluate each incoming message as
one Glint snippet against a per-connection Engine, returning a boxed result or a
structured error as JSON. Grounded on
sentra-language-sentra/internal/network's direct gorilla/websocket use.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8282", "address to listen on")
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type evalResponse struct {
	Result string `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

func runServe(_ *cobra.Command, _ []string) error {
	http.HandleFunc("/eval", serveEvalConn)
	log.Printf("glint serve listening on %s", serveAddr)
	return http.ListenAndServe(serveAddr, nil)
}

func serveEvalConn(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	engine := glint.New()
	applyProjectGlobals(engine)
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		resp := evalResponse{}
		v, err := engine.EvalString(string(msg))
		if err != nil {
			resp.Error = err.Error()
		} else {
			resp.Result = v.String()
		}
		data, _ := json.Marshal(resp)
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
}
