package extract

import (
	"strings"
	"testing"

	"github.com/dgallion1/botschema/internal/doctree"
	"github.com/dgallion1/botschema/internal/parser"
	"golang.org/x/net/html"
)

const referencePage = `<!DOCTYPE html>
<html><head><title>Telegram Bot API</title></head>
<body>
<div class="navbar">ignored</div>
<div id="dev_page_content">
<p>The Bot API is an HTTP-based interface.</p>
<h4><a class="anchor" name="recent-changes" href="#recent-changes"><i class="anchor-icon"></i></a>Recent changes</h4>
<p><strong>Bot API 7.2</strong></p>
<h3><a class="anchor" name="getting-updates" href="#getting-updates"><i class="anchor-icon"></i></a>Getting updates</h3>
<p>There are two mutually exclusive ways of receiving updates.</p>
<h4><a class="anchor" name="update" href="#update"><i class="anchor-icon"></i></a>Update</h4>
<p>This object represents an incoming update.</p>
<table class="table">
<thead><tr><th>Field</th><th>Type</th><th>Description</th></tr></thead>
<tbody>
<tr><td>update_id</td><td>Integer</td><td>The update's unique identifier.</td></tr>
<tr><td>message</td><td><a href="#message">Message</a></td><td><em>Optional</em>. New incoming message.</td></tr>
<tr><td>chat</td><td><a href="#chat">Chat</a></td><td>Chat the update belongs to.</td></tr>
</tbody>
</table>
<h4><a class="anchor" name="getupdates" href="#getupdates"><i class="anchor-icon"></i></a>getUpdates</h4>
<p>Use this method to receive incoming updates. Returns an Array of <a href="#update">Update</a> objects.</p>
<table class="table">
<thead><tr><th>Parameter</th><th>Type</th><th>Required</th><th>Description</th></tr></thead>
<tbody>
<tr><td>offset</td><td>Integer</td><td>Optional</td><td>Identifier of the first update to be returned.</td></tr>
<tr><td>chat_id</td><td>Integer or String</td><td>Yes</td><td>Target chat.</td></tr>
<tr><td>allowed_updates</td><td>Array of String</td><td>Optional</td><td>Update types to receive.</td></tr>
</tbody>
</table>
<h3><a class="anchor" name="available-types" href="#available-types"><i class="anchor-icon"></i></a>Available types</h3>
<p>All types used in the Bot API responses are represented as JSON-objects.</p>
<h4><a class="anchor" name="message" href="#message"><i class="anchor-icon"></i></a>Message</h4>
<p>This object represents a message.</p>
<table class="table">
<thead><tr><th>Field</th><th>Type</th><th>Description</th></tr></thead>
<tbody>
<tr><td>message_id</td><td>Integer</td><td>Unique message identifier.</td></tr>
<tr><td>reply_to_message</td><td><a href="#message">Message</a></td><td><em>Optional</em>. The original message.</td></tr>
<tr><td>chat</td><td><a href="#chat">Chat</a></td><td>Chat the message belongs to.</td></tr>
<tr><td>pinned_message</td><td><a href="#maybeinaccessiblemessage">MaybeInaccessibleMessage</a></td><td><em>Optional</em>. Pinned message.</td></tr>
</tbody>
</table>
<h4><a class="anchor" name="chat" href="#chat"><i class="anchor-icon"></i></a>Chat</h4>
<p>This object represents a chat.</p>
<table class="table">
<thead><tr><th>Field</th><th>Type</th><th>Description</th></tr></thead>
<tbody>
<tr><td>id</td><td>Integer</td><td>Unique identifier for this chat.</td></tr>
<tr><td>type</td><td>String</td><td>Type of the chat, can be either “private”, “group”, “supergroup” or “channel”.</td></tr>
</tbody>
</table>
<h4><a class="anchor" name="maybeinaccessiblemessage" href="#maybeinaccessiblemessage"><i class="anchor-icon"></i></a>MaybeInaccessibleMessage</h4>
<p>This object describes a message that can be inaccessible to the bot. It can be one of</p>
<ul>
<li><a href="#message">Message</a></li>
<li><a href="#inaccessiblemessage">InaccessibleMessage</a></li>
</ul>
<h4><a class="anchor" name="inaccessiblemessage" href="#inaccessiblemessage"><i class="anchor-icon"></i></a>InaccessibleMessage</h4>
<p>This object describes a message that was deleted or is otherwise inaccessible to the bot.</p>
<table class="table">
<thead><tr><th>Field</th><th>Type</th><th>Description</th></tr></thead>
<tbody>
<tr><td>chat</td><td><a href="#chat">Chat</a></td><td>Chat the message belonged to.</td></tr>
<tr><td>message_id</td><td>Integer</td><td>Unique message identifier inside the chat.</td></tr>
<tr><td>date</td><td>Integer</td><td>Always 0. The field can be used to differentiate regular and inaccessible messages.</td></tr>
<tr><td>status</td><td>String</td><td>Accessibility status, always “inaccessible”</td></tr>
</tbody>
</table>
<h4><a class="anchor" name="formatting-options" href="#formatting-options"><i class="anchor-icon"></i></a>Formatting options</h4>
<p>The Bot API supports basic formatting for messages.</p>
<table class="table">
<thead><tr><th>Field</th><th>Type</th><th>Description</th></tr></thead>
<tbody>
<tr><td>bold</td><td>Mystery</td><td>Would fail classification if parsed as fields.</td></tr>
</tbody>
</table>
<h3><a class="anchor" name="available-methods" href="#available-methods"><i class="anchor-icon"></i></a>Available methods</h3>
<h4><a class="anchor" name="sendmessage" href="#sendmessage"><i class="anchor-icon"></i></a>sendMessage</h4>
<p>Use this method to send text messages. On success, the sent <a href="#message">Message</a> is returned.</p>
<blockquote>Text of the message to be sent, 1-4096 characters.</blockquote>
<table class="table">
<thead><tr><th>Parameter</th><th>Type</th><th>Required</th><th>Description</th></tr></thead>
<tbody>
<tr><td>disable_notification</td><td>Boolean</td><td>Optional</td><td>Sends the message silently.</td></tr>
<tr><td>chat_id</td><td>Integer or String</td><td>Yes</td><td>Unique identifier for the target chat.</td></tr>
<tr><td>text</td><td>String</td><td>Yes</td><td>Text of the message to be sent.</td></tr>
</tbody>
</table>
<h4><a class="anchor" name="getchat" href="#getchat"><i class="anchor-icon"></i></a>getChat</h4>
<p>Use this method to get up to date information about the chat. Returns a <a href="#chat">Chat</a> object on success.</p>
</div>
<script>var x = 1;</script>
</body></html>`

func parsePage(t *testing.T, src string) *doctree.Document {
	t.Helper()
	p := &parser.HTMLParser{ContentRootID: "dev_page_content"}
	doc, err := p.Parse(strings.NewReader(src), "api.html")
	if err != nil {
		t.Fatalf("parse page: %v", err)
	}
	return doc
}

// parseFragment parses src as a document and returns its first tag element.
func parseFragment(t *testing.T, src, tag string) *html.Node {
	t.Helper()
	root, err := html.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("parse fragment: %v", err)
	}
	n := parser.FindFirst(root, tag)
	if n == nil {
		t.Fatalf("no <%s> in fragment", tag)
	}
	return n
}
