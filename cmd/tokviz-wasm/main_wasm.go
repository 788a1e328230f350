//go:build js && wasm

package main

import (
	"fmt"
	"log/slog"
	"os"
	"syscall/js"

	"github.com/example/go-tokviz/internal/controller"
	"github.com/example/go-tokviz/internal/render"
	"github.com/example/go-tokviz/internal/tokenizer"
	"github.com/example/go-tokviz/internal/viewmode"
)

// Element ids the page must provide.
const (
	textID       = "text"
	tokensID     = "tokens"
	showTextID   = "showText"
	showTokensID = "showTokens"
)

var (
	tok  tokenizer.Tokenizer = tokenizer.NewByteTokenizer()
	ctrl *controller.Controller
	// Listeners stay registered for the lifetime of the page.
	listeners []js.Func
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))

	api := map[string]any{
		"version": "0.1.0-wasm",
		"init":    js.FuncOf(initPage),
	}

	js.Global().Set("tokviz", js.ValueOf(api))
	js.Global().Set("textToIDs", js.FuncOf(textToIDs))
	js.Global().Set("textToPieces", js.FuncOf(textToPieces))
	println("tokviz wasm loaded")
	select {}
}

// initPage loads an optional SentencePiece model, binds the DOM surfaces and
// performs the first render. Without a model the byte engine is used.
func initPage(_ js.Value, args []js.Value) any {
	if len(args) > 0 && !args[0].IsUndefined() && !args[0].IsNull() {
		if data, ok := copyJSBytes(args[0].Get("model")); ok {
			sp, err := tokenizer.NewSentencePieceTokenizerFromBytes(data)
			if err != nil {
				return errResult(err.Error())
			}
			tok = sp
		}
	}

	doc := js.Global().Get("document")
	lookup := func(id string) (js.Value, error) {
		el := doc.Call("getElementById", id)
		if el.IsNull() || el.IsUndefined() {
			return js.Value{}, fmt.Errorf("element #%s not found", id)
		}
		return el, nil
	}

	var els [4]js.Value
	for i, id := range []string{textID, tokensID, showTextID, showTokensID} {
		el, err := lookup(id)
		if err != nil {
			return errResult(err.Error())
		}
		els[i] = el
	}
	text, tokens, showText, showTokens := els[0], els[1], els[2], els[3]

	for _, l := range listeners {
		l.Release()
	}
	listeners = nil

	ctrl = controller.New(tok,
		domInput{el: text},
		domModes{ids: showTokens},
		domDisplay{el: tokens, doc: doc},
	)

	on(text, "input", controller.TextChanged)
	on(showTokens, "change", controller.ModeChanged)
	on(showText, "change", controller.ModeChanged)

	if err := ctrl.Start(); err != nil {
		return errResult(err.Error())
	}

	return okResult(map[string]any{})
}

func on(el js.Value, event string, kind controller.EventKind) {
	fn := js.FuncOf(func(js.Value, []js.Value) any {
		if err := ctrl.OnChange(controller.Event{Kind: kind}); err != nil {
			js.Global().Get("console").Call("error", err.Error())
		}
		return nil
	})
	el.Call("addEventListener", event, fn)
	listeners = append(listeners, fn)
}

type domInput struct {
	el js.Value
}

func (d domInput) Text() string { return d.el.Get("value").String() }

// domModes reads the radio pair. The browser keeps the two options
// exclusive, so inspecting one is enough.
type domModes struct {
	ids js.Value
}

func (d domModes) CurrentMode() viewmode.Mode {
	if d.ids.Get("checked").Bool() {
		return viewmode.Identifiers
	}
	return viewmode.Pieces
}

type domDisplay struct {
	el  js.Value
	doc js.Value
}

func (d domDisplay) Commit(out render.Output) error {
	d.el.Call("replaceChildren")

	if out.Mode == viewmode.Identifiers {
		d.el.Set("textContent", out.Text)
		return nil
	}

	for _, b := range out.Blocks {
		span := d.doc.Call("createElement", "span")
		span.Set("textContent", b.Text)
		style := span.Get("style")
		style.Set("backgroundColor", b.Color.String())
		style.Set("whiteSpace", "pre")
		style.Set("display", "inline-block")
		d.el.Call("appendChild", span)
	}

	return nil
}

func textToIDs(_ js.Value, args []js.Value) any {
	if len(args) < 1 {
		return errResult("missing text argument")
	}

	ids, err := tok.TextToIDs(args[0].String())
	if err != nil {
		return errResult(err.Error())
	}

	out := make([]any, len(ids))
	for i, id := range ids {
		out[i] = id
	}

	return okResult(map[string]any{"ids": out})
}

func textToPieces(_ js.Value, args []js.Value) any {
	if len(args) < 1 {
		return errResult("missing text argument")
	}

	pieces, err := tok.TextToPieces(args[0].String())
	if err != nil {
		return errResult(err.Error())
	}

	out := make([]any, len(pieces))
	for i, p := range pieces {
		out[i] = p
	}

	return okResult(map[string]any{"pieces": out})
}

func copyJSBytes(v js.Value) ([]byte, bool) {
	if v.IsUndefined() || v.IsNull() {
		return nil, false
	}

	uint8Array := js.Global().Get("Uint8Array")
	if !uint8Array.IsUndefined() && v.InstanceOf(uint8Array) {
		buf := make([]byte, v.Get("length").Int())
		n := js.CopyBytesToGo(buf, v)
		return buf[:n], true
	}

	arrayBuffer := js.Global().Get("ArrayBuffer")
	if !arrayBuffer.IsUndefined() && v.InstanceOf(arrayBuffer) {
		wrapped := uint8Array.New(v)
		buf := make([]byte, wrapped.Get("length").Int())
		n := js.CopyBytesToGo(buf, wrapped)
		return buf[:n], true
	}

	return nil, false
}

func okResult(payload map[string]any) map[string]any {
	payload["ok"] = true
	return payload
}

func errResult(msg string) map[string]any {
	return map[string]any{
		"ok":    false,
		"error": msg,
	}
}
