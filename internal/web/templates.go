package web

const pageTemplate = `<!DOCTYPE HTML>
<html>
  <head>
    <title>{{ .Name }}</title>
    <meta charset="utf-8">
    <style>#image{width:280px;height:280px;image-rendering:pixelated;border:1px solid #ccc}</style>
  </head>
<body>
  <h2>{{ .Name }} digit classifier</h2>
  <p>
    <button id="prepare" disabled>Prepare dataset</button>
    <button id="train" disabled>Train one epoch</button>
    <select id="viewMode">
      <option value="positive">Positive</option>
      <option value="negative">Negative</option>
    </select>
  </p>
  <canvas id="image" width="28" height="28"></canvas>
  <p>
    <button id="previous" disabled>Previous</button>
    <span id="currentImage"></span>
    <button id="next" disabled>Next</button>
  </p>
  <p><a href="/stats.csv">epoch statistics</a> · <a href="/model.dot">model</a> · <a href="/stream">live stream</a></p>
<script>
(function() {
  var ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
  var canvas = document.querySelector("#image");
  var context = canvas.getContext("2d");
  var caption = document.querySelector("#currentImage");
  ["prepare", "train", "next", "previous"].forEach(function(id) {
    document.querySelector("#" + id).addEventListener("click", function() {
      ws.send(JSON.stringify({click: id}));
    });
  });
  var viewMode = document.querySelector("#viewMode");
  viewMode.addEventListener("change", function() {
    ws.send(JSON.stringify({viewMode: viewMode.value}));
  });
  ws.onmessage = function(e) {
    var msg = JSON.parse(e.data);
    Object.keys(msg.controls || {}).forEach(function(id) {
      var el = document.querySelector("#" + id);
      if (el) { el.disabled = !msg.controls[id]; }
    });
    caption.textContent = msg.caption;
    if (msg.image) {
      var img = new Image();
      img.onload = function() {
        canvas.width = img.width;
        canvas.height = img.height;
        context.drawImage(img, 0, 0);
      };
      img.src = msg.image;
    }
  };
  ws.onclose = function() { caption.textContent = "Connection closed"; };
})();
</script>
</body>
</html>
`
