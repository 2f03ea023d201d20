package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) handleHome(c *gin.Context) {
	c.String(http.StatusOK, "Welcome to "+h.config.Name+"! Visit /configure to build your addon URL.")
}

// handleConfigure serves the configuration page. The page assembles the
// pipe-delimited token client-side and hands the finished manifest URL to
// the user.
func (h *Handler) handleConfigure(c *gin.Context) {
	page := `<!DOCTYPE html>
<html lang="it">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>Configurazione ` + h.config.Name + `</title>
  <style>
    :root {
      --primary-color: #2e8b57;
      --background-color: #f7f9fc;
      --text-color: #333;
      --input-border: #ccc;
    }
    * { box-sizing: border-box; }
    body {
      font-family: sans-serif;
      background-color: var(--background-color);
      color: var(--text-color);
      margin: 0;
      padding: 20px;
      display: flex;
      align-items: center;
      justify-content: center;
      min-height: 100vh;
    }
    .container {
      background-color: #fff;
      border-radius: 8px;
      padding: 30px;
      max-width: 500px;
      width: 100%;
      box-shadow: 0 4px 12px rgba(0, 0, 0, 0.1);
    }
    h1 { text-align: center; color: var(--primary-color); }
    label { display: block; margin-top: 10px; }
    input[type=text] {
      width: 100%;
      padding: 10px;
      border: 1px solid var(--input-border);
      border-radius: 4px;
      margin-top: 5px;
    }
    button {
      width: 100%;
      margin-top: 20px;
      padding: 12px;
      background-color: var(--primary-color);
      color: #fff;
      border: none;
      border-radius: 4px;
      font-size: 1rem;
      cursor: pointer;
    }
    #result { margin-top: 20px; word-break: break-all; }
  </style>
</head>
<body>
  <div class="container">
    <h1>` + h.config.Icon + h.config.Name + `</h1>
    <label><input type="checkbox" value="SC" checked> StreamingCommunity</label>
    <label><input type="checkbox" value="LC" checked> LordChannel</label>
    <label><input type="checkbox" value="GS" checked> GuardaSerie</label>
    <label><input type="checkbox" value="AW" checked> AnimeWorld</label>
    <label><input type="checkbox" value="AS" checked> AnimeSaturn</label>
    <label><input type="checkbox" value="AU" checked> AnimeUnity</label>
    <label><input type="checkbox" value="GA"> GogoAnime</label>
    <label><input type="checkbox" value="LIVETV"> TV in diretta</label>
    <label for="mfp-url">MediaFlow Proxy URL (opzionale)</label>
    <input type="text" id="mfp-url" placeholder="https://mfp.example.com">
    <label for="mfp-pass">MediaFlow Proxy password</label>
    <input type="text" id="mfp-pass" placeholder="password">
    <button onclick="buildURL()">Genera URL manifest</button>
    <div id="result"></div>
  </div>
  <script>
    function buildURL() {
      var parts = [];
      document.querySelectorAll('input[type=checkbox]:checked').forEach(function (el) {
        parts.push(el.value);
      });
      var mfpURL = document.getElementById('mfp-url').value.trim();
      var mfpPass = document.getElementById('mfp-pass').value.trim();
      if (mfpURL && mfpPass) {
        parts.push('MFP[' + mfpURL + ',' + mfpPass + ')');
      }
      var token = encodeURIComponent(parts.join('|'));
      var url = window.location.origin + '/' + token + '/manifest.json';
      document.getElementById('result').innerHTML =
        '<a href="' + url + '">' + url + '</a>';
    }
  </script>
</body>
</html>`
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(http.StatusOK, page)
}
