package api

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/openclaw/qrgen/payload"
	"github.com/openclaw/qrgen/qr"
)

type formPageData struct {
	Kinds      []payload.Kind
	ModuleSize int
	Border     int
	Foreground string
	Background string
	Escape     bool
	Limits     struct{ MinModule, MaxModule, MinBorder, MaxBorder int }
}

func (s *Server) handleFormPage(w http.ResponseWriter, r *http.Request) {
	data := formPageData{
		Kinds:      payload.Kinds,
		ModuleSize: s.Defaults.ModuleSize,
		Border:     s.Defaults.Border,
		Foreground: qr.HexColor(s.Defaults.Foreground),
		Background: qr.HexColor(s.Defaults.Background),
		Escape:     s.Defaults.Escape,
	}
	data.Limits.MinModule, data.Limits.MaxModule = qr.MinModuleSize, qr.MaxModuleSize
	data.Limits.MinBorder, data.Limits.MaxBorder = qr.MinBorder, qr.MaxBorder

	var buf bytes.Buffer
	if err := formPage.Execute(&buf, data); err != nil {
		s.Log.Error("render form page", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to render page")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

var formPage = template.Must(template.New("form").Parse(formPageHTML))

const formPageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>QR Code Generator</title>
<style>
  * { margin: 0; padding: 0; box-sizing: border-box; }
  body {
    font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
    background: #0a0a0a;
    color: #e0e0e0;
    display: flex;
    justify-content: center;
    align-items: flex-start;
    min-height: 100vh;
    padding: 48px 16px;
  }
  .layout { display: flex; gap: 24px; flex-wrap: wrap; justify-content: center; }
  .card {
    background: #1a1a1a;
    border: 1px solid #333;
    border-radius: 16px;
    padding: 32px;
    width: 380px;
  }
  h1 { font-size: 20px; font-weight: 600; margin-bottom: 24px; }
  h2 { font-size: 15px; font-weight: 600; margin: 20px 0 12px; color: #aaa; }
  label { display: block; font-size: 13px; color: #888; margin: 12px 0 4px; }
  input, select, textarea {
    width: 100%;
    background: #111;
    color: #e0e0e0;
    border: 1px solid #333;
    border-radius: 8px;
    padding: 8px;
    font-size: 14px;
  }
  input[type=color] { height: 36px; padding: 2px; }
  input[type=checkbox] { width: auto; }
  fieldset { border: none; display: none; }
  fieldset.active { display: block; }
  button, a.download {
    display: inline-block;
    margin-top: 24px;
    background: #4ade80;
    color: #0a0a0a;
    border: none;
    border-radius: 8px;
    padding: 10px 18px;
    font-size: 14px;
    font-weight: 600;
    cursor: pointer;
    text-decoration: none;
  }
  #preview { text-align: center; }
  #preview img { max-width: 100%; background: #fff; border-radius: 8px; }
  #message { font-size: 14px; color: #888; margin-top: 8px; }
  .warning { color: #facc15 !important; }
  .error { color: #f87171 !important; }
</style>
</head>
<body>
<div class="layout">
<form class="card" id="form">
  <h1>QR Code Generator</h1>

  <label for="type">Data type</label>
  <select id="type" name="type">
    <option value=""></option>
    {{range .Kinds}}<option value="{{.}}">{{.}}</option>
    {{end}}
  </select>

  <fieldset data-kind="text">
    <label for="text">Text</label>
    <textarea id="text" name="text" rows="4"></textarea>
  </fieldset>
  <fieldset data-kind="url">
    <label for="url">URL</label>
    <input id="url" name="url" type="text">
  </fieldset>
  <fieldset data-kind="contact">
    <label for="name">Name</label><input id="name" name="name" type="text">
    <label for="phone">Phone</label><input id="phone" name="phone" type="text">
    <label for="email">Email</label><input id="email" name="email" type="text">
    <label for="address">Address</label><input id="address" name="address" type="text">
  </fieldset>
  <fieldset data-kind="wifi">
    <label for="ssid">SSID</label><input id="ssid" name="ssid" type="text">
    <label for="password">Password</label><input id="password" name="password" type="password">
    <label for="auth">Security</label>
    <select id="auth" name="auth"><option>WPA</option><option>WEP</option><option>None</option></select>
  </fieldset>
  <fieldset data-kind="location">
    <label for="latitude">Latitude</label><input id="latitude" name="latitude" type="text">
    <label for="longitude">Longitude</label><input id="longitude" name="longitude" type="text">
  </fieldset>

  <h2>Options</h2>
  <label for="module_size">Module size: <span id="module_size_value">{{.ModuleSize}}</span> px</label>
  <input id="module_size" name="module_size" type="range" min="{{.Limits.MinModule}}" max="{{.Limits.MaxModule}}" value="{{.ModuleSize}}">
  <label for="border">Border: <span id="border_value">{{.Border}}</span> modules</label>
  <input id="border" name="border" type="range" min="{{.Limits.MinBorder}}" max="{{.Limits.MaxBorder}}" value="{{.Border}}">
  <label for="fg">Foreground</label><input id="fg" name="fg" type="color" value="{{.Foreground}}">
  <label for="bg">Background</label><input id="bg" name="bg" type="color" value="{{.Background}}">
  <label for="logo">Logo (optional)</label><input id="logo" name="logo" type="file" accept="image/*">
  <label><input name="escape" type="checkbox" value="true"{{if .Escape}} checked{{end}}> Escape special characters</label>

  <button type="submit">Generate QR code</button>
</form>

<div class="card" id="preview">
  <h1>Result</h1>
  <div id="image"></div>
  <div id="message">Fill in the form and press Generate.</div>
  <div id="download"></div>
</div>
</div>
<script>
(function() {
  var form = document.getElementById('form');
  var typeEl = document.getElementById('type');
  var imageEl = document.getElementById('image');
  var messageEl = document.getElementById('message');
  var downloadEl = document.getElementById('download');

  function clearChildren(el) {
    while (el.firstChild) el.removeChild(el.firstChild);
  }

  function showKind() {
    var sets = document.querySelectorAll('fieldset');
    for (var i = 0; i < sets.length; i++) {
      sets[i].className = sets[i].getAttribute('data-kind') === typeEl.value ? 'active' : '';
    }
  }

  function bindRange(id) {
    var input = document.getElementById(id);
    var label = document.getElementById(id + '_value');
    input.addEventListener('input', function() { label.textContent = input.value; });
  }

  function showMessage(text, cls) {
    messageEl.textContent = text;
    messageEl.className = cls || '';
  }

  typeEl.addEventListener('change', showKind);
  bindRange('module_size');
  bindRange('border');
  showKind();

  form.addEventListener('submit', function(ev) {
    ev.preventDefault();
    var body = new FormData(form);
    var sets = document.querySelectorAll('fieldset');
    for (var i = 0; i < sets.length; i++) {
      if (sets[i].getAttribute('data-kind') === typeEl.value) continue;
      var inputs = sets[i].querySelectorAll('input, textarea, select');
      for (var j = 0; j < inputs.length; j++) body.delete(inputs[j].name);
    }
    if (!form.escape.checked) body.set('escape', 'false');

    fetch('/generate/data', { method: 'POST', body: body })
      .then(function(r) { return r.json(); })
      .then(function(data) {
        clearChildren(imageEl);
        clearChildren(downloadEl);
        if (data.error) {
          showMessage(data.error, data.kind === 'empty_payload' ? 'warning' : 'error');
          return;
        }
        var src = 'data:' + data.mime + ';base64,' + data.png;
        var img = document.createElement('img');
        img.setAttribute('alt', 'QR code');
        img.setAttribute('src', src);
        imageEl.appendChild(img);
        showMessage('Version ' + data.version + ', ' + data.width + ' x ' + data.width + ' px');
        var link = document.createElement('a');
        link.className = 'download';
        link.setAttribute('href', src);
        link.setAttribute('download', data.filename);
        link.textContent = 'Download ' + data.filename;
        downloadEl.appendChild(link);
      })
      .catch(function() {
        showMessage('Request failed, please retry.', 'error');
      });
  });
})();
</script>
</body>
</html>`
