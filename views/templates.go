package views

const layoutTpl = `<!doctype html>
<html lang="id">
<head>
<meta charset="utf-8" />
<meta name="viewport" content="width=device-width, initial-scale=1" />
<title>{{if .Title}}{{.Title}} - GitAnime{{else}}GitAnime{{end}}</title>
{{if .Canonical}}<link rel="canonical" href="{{.Canonical}}" />
<meta property="og:url" content="{{.Canonical}}" />{{end}}
<meta property="og:site_name" content="GitAnime" />
<meta property="og:title" content="{{if .Title}}{{.Title}}{{else}}GitAnime{{end}}" />
<style>
body{font-family:system-ui,-apple-system,Segoe UI,Roboto;margin:0;background:#0f1115;color:#e5e7eb}
a{color:#818cf8;text-decoration:none}
a:hover{text-decoration:underline}
header.site{display:flex;gap:16px;align-items:center;padding:12px 20px;background:#151821;border-bottom:1px solid #262b38}
header.site .brand{font-weight:700;color:#a5b4fc;font-size:1.1rem}
main{max-width:1100px;margin:0 auto;padding:20px}
.grid{display:grid;grid-template-columns:repeat(auto-fill,minmax(180px,1fr));gap:14px}
.card{background:#1a1e2a;border:1px solid #262b38;border-radius:8px;padding:12px}
.card img{width:100%;border-radius:6px}
.muted{color:#9ca3af}
.error-box{border:1px solid #7f1d1d;background:#450a0a33;border-radius:8px;padding:16px;margin:16px 0}
.empty-box{border:1px solid #374151;background:#11131a;border-radius:8px;padding:24px;text-align:center}
.pagination{display:flex;gap:10px;margin:20px 0;align-items:center}
.btn{display:inline-block;background:#4f46e5;color:#fff;border:0;border-radius:6px;padding:8px 14px;cursor:pointer}
.btn.secondary{background:#374151}
.btn[disabled]{background:#1f2430;color:#6b7280;cursor:not-allowed}
input,select{background:#11131a;border:1px solid #374151;color:#e5e7eb;border-radius:6px;padding:8px}
.filters{display:flex;flex-wrap:wrap;gap:10px;margin:14px 0}
.progress{background:#1f2430;border-radius:6px;height:10px;overflow:hidden}
.progress>div{background:#4f46e5;height:10px;transition:width .5s}
.player{position:relative;background:#000;border-radius:8px;overflow:hidden;aspect-ratio:16/9}
.player video{width:100%;height:100%;object-fit:contain;background:#000}
.player.fit-cover video{object-fit:cover}
.player .controls{position:absolute;left:0;right:0;bottom:0;padding:10px;background:linear-gradient(transparent,rgba(0,0,0,.8));display:flex;flex-direction:column;gap:8px}
.player .controls.hidden{display:none}
.player .row{display:flex;gap:10px;align-items:center}
.player input[type=range]{flex:0 0 auto}
.player .seek{width:100%}
.qualities{display:grid;grid-template-columns:repeat(auto-fill,minmax(140px,1fr));gap:8px;margin-top:14px}
.qualities .on{outline:2px solid #4f46e5}
footer.site{padding:20px;text-align:center;color:#6b7280;border-top:1px solid #262b38;margin-top:30px}
</style>
</head>
<body>
<header class="site">
  <span class="brand">GitAnime</span>
  <nav>
    <a href="/">Home</a>
    <a href="/anime">Daftar Anime</a>
    <a href="/latest">Episode Terbaru</a>
  </nav>
</header>
{{if and .ShowAds .HeaderAd}}<div class="ad ad-header">{{.HeaderAd}}</div>{{end}}
<main>
{{template "content" .}}
</main>
<footer class="site">
  GitAnime &middot; <a href="/terms">Syarat &amp; Ketentuan</a> &middot; <a href="/privacy-policy">Kebijakan Privasi</a>
</footer>
</body>
</html>`

const homeTpl = `{{define "content"}}
<h1>Nonton Anime Subtitle Indonesia</h1>
<form method="get" action="/">
  <input type="search" name="search" value="{{.Search}}" placeholder="Cari anime..." />
  <button class="btn" type="submit">Cari</button>
</form>

{{if .Scraping}}
<div class="card" id="scraping-panel" style="margin-top:16px">
  <h2>Sedang Mengumpulkan Data Anime...</h2>
  <div class="progress"><div id="scraping-bar" style="width:{{.Scraping.Progress}}%"></div></div>
  <p class="muted" id="scraping-message">{{.Scraping.Message}}</p>
  {{if .Scraping.EstimatedTime}}<p class="muted">Estimasi waktu: {{.Scraping.EstimatedTime}}</p>{{end}}
</div>
<script>
(function(){
  var bar = document.getElementById('scraping-bar');
  var msg = document.getElementById('scraping-message');
  var timer = setInterval(function(){
    fetch('/api/scraping-status').then(function(r){ return r.json(); }).then(function(body){
      var st = (body && body.data) || body || {};
      if (bar && typeof st.progress === 'number') bar.style.width = st.progress + '%';
      if (msg && st.message) msg.textContent = st.message;
      if (st.status === 'completed' || st.status === 'error') {
        clearInterval(timer);
        window.location.reload();
      }
    }).catch(function(){});
  }, 2000);
  window.addEventListener('beforeunload', function(){ clearInterval(timer); });
})();
</script>
{{end}}

{{if .Error}}
<div class="error-box">
  <p>{{.Error}}</p>
  <a class="btn" href="">Coba Lagi</a>
</div>
{{else}}
<h2 style="margin-top:24px">Episode Terbaru</h2>
{{if .Episodes}}
<div class="grid">
  {{range .Episodes}}
  <div class="card">
    {{if .ImageURL}}<a href="/episode/{{.ID}}?title={{.Title}}"><img src="{{.ImageURL}}" alt="{{.Title}}" loading="lazy" /></a>{{end}}
    <a href="/episode/{{.ID}}?title={{.Title}}">{{.Title}}</a>
    {{if .Released}}<div class="muted">{{.Released}}</div>{{end}}
  </div>
  {{end}}
</div>
<div class="pagination">
  {{if .PrevURL}}<a class="btn secondary" href="{{.PrevURL}}">&laquo; Sebelumnya</a>{{end}}
  <span class="muted">Halaman {{.Pagination.CurrentPage}} dari {{.Pagination.TotalPages}}</span>
  {{if .NextURL}}<a class="btn secondary" href="{{.NextURL}}">Berikutnya &raquo;</a>{{end}}
</div>
{{else}}
<div class="empty-box">
  <p>Belum ada episode yang tersedia.</p>
</div>
{{end}}
{{end}}
{{end}}`

const animeListTpl = `{{define "content"}}
<h1>Daftar Anime</h1>
<form method="get" action="/anime" class="filters">
  <input type="search" name="search" value="{{.Filters.Search}}" placeholder="Cari judul..." />
  <select name="status">
    <option value="" {{if not .Filters.Status}}selected{{end}}>Semua Status</option>
    <option value="ongoing" {{if eq .Filters.Status "ongoing"}}selected{{end}}>Ongoing</option>
    <option value="completed" {{if eq .Filters.Status "completed"}}selected{{end}}>Completed</option>
  </select>
  <select name="sortBy">
    <option value="title" {{if eq .Filters.SortBy "title"}}selected{{end}}>Judul</option>
    <option value="score" {{if eq .Filters.SortBy "score"}}selected{{end}}>Skor</option>
    <option value="updated" {{if eq .Filters.SortBy "updated"}}selected{{end}}>Terakhir Update</option>
  </select>
  <select name="sortOrder">
    <option value="asc" {{if eq .Filters.SortOrder "asc"}}selected{{end}}>Naik</option>
    <option value="desc" {{if eq .Filters.SortOrder "desc"}}selected{{end}}>Turun</option>
  </select>
  <button class="btn" type="submit">Terapkan</button>
  <a class="btn secondary" href="/anime">Reset</a>
</form>

{{if .Error}}
<div class="error-box">
  <p>{{.Error}}</p>
  <a class="btn" href="/anime?{{.Filters.Encode}}">Coba Lagi</a>
</div>
{{else}}
{{if .Summary.TotalAnime}}<p class="muted">{{.Summary.TotalAnime}} judul{{if .Summary.LastUpdated}} &middot; diperbarui {{.Summary.LastUpdated}}{{end}}</p>{{end}}
{{if .Anime}}
<div class="grid">
  {{range .Anime}}
  <div class="card">
    {{if .ImageURL}}<a href="/anime/{{.Slug}}"><img src="{{.ImageURL}}" alt="{{.Title}}" loading="lazy" /></a>{{end}}
    <a href="/anime/{{.Slug}}">{{.Title}}</a>
    <div class="muted">{{.Status}}{{if .Score}} &middot; {{.Score}}{{end}}</div>
  </div>
  {{end}}
</div>
<div class="pagination">
  {{if .PrevURL}}<a class="btn secondary" href="{{.PrevURL}}">&laquo; Sebelumnya</a>{{end}}
  <span class="muted">Halaman {{.Pagination.CurrentPage}} dari {{.Pagination.TotalPages}}</span>
  {{if .NextURL}}<a class="btn secondary" href="{{.NextURL}}">Berikutnya &raquo;</a>{{end}}
</div>
{{else}}
<div class="empty-box"><p>Tidak ada anime yang cocok dengan filter.</p></div>
{{end}}
{{end}}
{{end}}`

const latestTpl = `{{define "content"}}
<h1>Episode Terbaru</h1>
{{if .Error}}
<div class="error-box"><p>{{.Error}}</p><a class="btn" href="/latest">Coba Lagi</a></div>
{{else}}
{{if .Episodes}}
<div class="grid">
  {{range .Episodes}}
  <div class="card">
    {{if .ImageURL}}<a href="/episode/{{.ID}}?title={{.Title}}"><img src="{{.ImageURL}}" alt="{{.Title}}" loading="lazy" /></a>{{end}}
    <a href="/episode/{{.ID}}?title={{.Title}}">{{.Title}}</a>
    {{if .Released}}<div class="muted">{{.Released}}</div>{{end}}
  </div>
  {{end}}
</div>
<div class="pagination">
  {{if .PrevURL}}<a class="btn secondary" href="{{.PrevURL}}">&laquo; Sebelumnya</a>{{end}}
  <span class="muted">Halaman {{.Pagination.CurrentPage}} dari {{.Pagination.TotalPages}}</span>
  {{if .NextURL}}<a class="btn secondary" href="{{.NextURL}}">Berikutnya &raquo;</a>{{end}}
</div>
{{else}}
<div class="empty-box"><p>Belum ada episode yang tersedia.</p></div>
{{end}}
{{end}}
{{end}}`

const detailTpl = `{{define "content"}}
{{if .Error}}
<div class="error-box">
  <h1>Terjadi Kesalahan</h1>
  <p>{{.Error}}</p>
  <a class="btn" href="">Coba Lagi</a> <a class="btn secondary" href="/">Kembali</a>
</div>
{{else}}
<div style="display:flex;gap:20px;flex-wrap:wrap">
  {{if .Detail.ImageURL}}<img src="{{.Detail.ImageURL}}" alt="{{.Detail.Title}}" style="width:220px;border-radius:8px;align-self:flex-start" />{{end}}
  <div style="flex:1;min-width:260px">
    <h1>{{.Detail.Title}}</h1>
    <p class="muted">{{.Detail.Status}}{{if .Detail.ReleaseDate}} &middot; {{.Detail.ReleaseDate}}{{end}}</p>
    {{if .Detail.Genres}}<p class="muted">{{range $i, $g := .Detail.Genres}}{{if $i}}, {{end}}{{$g}}{{end}}</p>{{end}}
    {{if .Detail.Synopsis}}<p>{{.Detail.Synopsis}}</p>{{end}}
  </div>
</div>
<h2>Daftar Episode</h2>
{{if .Episodes}}
<div class="card">
  {{range .Episodes}}
  <p><a href="/episode/{{.ID}}?title={{.Title}}">&#9654; {{.Title}}</a>{{if .Date}} <span class="muted">{{.Date}}</span>{{end}}</p>
  {{end}}
</div>
{{else}}
<div class="empty-box"><p>Belum ada episode untuk anime ini.</p></div>
{{end}}
{{end}}
{{end}}`

const staticTpl = `{{define "content"}}
<h1>{{.Heading}}</h1>
{{.Body}}
{{end}}`

const errorTpl = `{{define "content"}}
<div class="error-box" style="text-align:center">
  <h1>{{.Code}}</h1>
  <p>{{.Message}}</p>
  <a class="btn" href="">Coba Lagi</a>
  <a class="btn secondary" href="/">Kembali ke Beranda</a>
</div>
{{end}}`
