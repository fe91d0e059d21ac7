package livereload

import "bytes"

// Script reconnects to the hub and reloads the page on a reload message.
const Script = `<script>(function(){` +
	`var p=location.protocol==="https:"?"wss:":"ws:";` +
	`var ws=new WebSocket(p+"//"+location.host+"` + Path + `");` +
	`ws.onmessage=function(e){if(e.data==="` + ReloadMessage + `"){location.reload();}};` +
	`})();</script>`

// Inject places Script before the closing body tag, or at the end of the
// document when there is none.
func Inject(html []byte) []byte {
	i := bytes.LastIndex(bytes.ToLower(html), []byte("</body>"))
	if i < 0 {
		out := make([]byte, 0, len(html)+len(Script))
		return append(append(out, html...), Script...)
	}
	out := make([]byte, 0, len(html)+len(Script))
	out = append(out, html[:i]...)
	out = append(out, Script...)
	return append(out, html[i:]...)
}
