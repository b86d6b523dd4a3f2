package views

// The player widget is a thin <video> wrapper. Every control input runs
// through the server-side session state machine first and the widget
// applies whatever snapshot comes back, so the page never owns playback
// state of its own.
const episodeTpl = `{{define "content"}}
<p><a class="btn secondary" href="javascript:history.back()">&larr; Kembali</a></p>
<h1>{{if .EpisodeTitle}}{{.EpisodeTitle}}{{else}}Episode Player{{end}}</h1>

{{if .Error}}
<div class="error-box">
  <h2>Terjadi Kesalahan</h2>
  <p>{{.Error}}</p>
  <a class="btn" href="">Coba Lagi</a> <a class="btn secondary" href="/">Kembali</a>
</div>
{{else if not .VideoURL}}
<div class="empty-box">
  <h2>Video Tidak Tersedia</h2>
  <p>Video untuk episode ini belum tersedia atau sedang dalam proses update.</p>
</div>
{{else}}
{{if and .ShowAds .VideoAd}}<div class="ad ad-video">{{.VideoAd}}</div>{{end}}
<div class="player" id="player">
  <video id="video" src="{{.VideoURL}}" preload="metadata" playsinline {{if .Autoplay}}autoplay{{end}}></video>
  <div class="controls" id="controls">
    <input class="seek" id="seek" type="range" min="0" max="1" step="any" value="0" />
    <div class="row">
      <button class="btn" id="playpause" type="button">&#9654;</button>
      <button class="btn secondary" id="mute" type="button">&#128266;</button>
      <input id="volume" type="range" min="0" max="1" step="any" value="0.8" style="width:90px" />
      <span class="muted" id="time">0:00 / 0:00</span>
      <span style="flex:1"></span>
      <button class="btn secondary" id="fit" type="button" title="Ubah mode tampilan">&#9633;</button>
      <button class="btn secondary" id="rotate" type="button" title="Kunci orientasi">&#8634;</button>
      <button class="btn secondary" id="fullscreen" type="button">&#x26F6;</button>
    </div>
  </div>
</div>
{{end}}

{{if .Options}}
<div class="card" style="margin-top:16px">
  <h2>Pilih Kualitas Video</h2>
  <div class="qualities">
    {{range .Options}}
    {{if .ProxyURL}}
    <button class="btn secondary quality{{if .Active}} on{{end}}" type="button" data-url="{{.ProxyURL}}">{{.Text}}<br /><small>&#10003; Tersedia</small></button>
    {{else}}
    <button class="btn" type="button" disabled>{{.Text}}<br /><small>&#10007; Tidak tersedia</small></button>
    {{end}}
    {{end}}
  </div>
</div>
{{end}}

{{if .VideoURL}}
<script>
(function(){
  var sessionId = {{.SessionID}};
  var video = document.getElementById('video');
  var playerBox = document.getElementById('player');
  var controls = document.getElementById('controls');
  var seek = document.getElementById('seek');
  var volume = document.getElementById('volume');
  var timeLabel = document.getElementById('time');
  var generation = 1;
  var dragging = false;

  function fmt(s){
    if (!isFinite(s)) return '0:00';
    var m = Math.floor(s / 60), sec = Math.floor(s % 60);
    return m + ':' + (sec < 10 ? '0' : '') + sec;
  }

  function apply(view){
    if (!view) return;
    generation = view.generation;
    video.volume = view.effectiveVolume;
    video.muted = view.muted;
    if (view.playing && video.paused) video.play().catch(function(){});
    if (!view.playing && !video.paused) video.pause();
    playerBox.classList.toggle('fit-cover', !view.fitContain);
    controls.classList.toggle('hidden', !view.controlsVisible);
    if (!dragging) seek.value = view.played;
    timeLabel.textContent = fmt(view.played * (video.duration || 0)) + ' / ' + fmt(video.duration || 0);
    document.getElementById('playpause').innerHTML = view.playing ? '&#10074;&#10074;' : '&#9654;';
    document.getElementById('mute').innerHTML = view.muted ? '&#128263;' : '&#128266;';
    if (view.state === 'errored') showError(view.error);
  }

  function send(ev){
    return fetch('/api/player/sessions/' + sessionId + '/events', {
      method: 'POST',
      headers: {'Content-Type': 'application/json'},
      body: JSON.stringify(ev)
    }).then(function(r){ return r.json(); }).then(apply).catch(function(){});
  }

  function showError(message){
    playerBox.outerHTML = '<div class="error-box"><h2>Error</h2><p>' +
      (message || 'Gagal memuat video. Silakan coba lagi.') +
      '</p><button class="btn" onclick="window.location.reload()">Coba Lagi</button></div>';
  }

  document.getElementById('playpause').addEventListener('click', function(){ send({type:'playpause'}); });
  document.getElementById('mute').addEventListener('click', function(){ send({type:'mute'}); });
  volume.addEventListener('input', function(){ send({type:'volume', value: parseFloat(volume.value)}); });

  seek.addEventListener('mousedown', function(){ dragging = true; send({type:'seekstart', value: parseFloat(seek.value)}); });
  seek.addEventListener('input', function(){ if (dragging) send({type:'seekmove', value: parseFloat(seek.value)}); });
  seek.addEventListener('mouseup', function(){
    dragging = false;
    var frac = parseFloat(seek.value);
    send({type:'seekcommit', value: frac}).then(function(){
      if (isFinite(video.duration)) video.currentTime = frac * video.duration;
    });
  });
  video.addEventListener('seeked', function(){ send({type:'seekack'}); });

  video.addEventListener('timeupdate', function(){
    if (!video.duration) return;
    var loaded = 0;
    if (video.buffered.length) loaded = video.buffered.end(video.buffered.length - 1) / video.duration;
    send({type:'progress', generation: generation, played: video.currentTime / video.duration, loaded: loaded});
  });
  video.addEventListener('error', function(){ send({type:'error', message: 'Gagal memuat video. Silakan coba lagi.'}); });

  document.getElementById('fullscreen').addEventListener('click', function(){
    if (document.fullscreenElement) {
      document.exitFullscreen().catch(function(){});
      send({type:'exitfullscreen'});
    } else {
      playerBox.requestFullscreen().catch(function(){});
      send({type:'enterfullscreen'});
    }
  });
  document.getElementById('fit').addEventListener('click', function(){ send({type:'togglefit'}); });
  document.getElementById('rotate').addEventListener('click', function(){
    if (!document.fullscreenElement) playerBox.requestFullscreen().catch(function(){});
    if (screen.orientation && screen.orientation.lock) screen.orientation.lock('landscape').catch(function(){});
    send({type:'landscapelock'});
  });

  ['mousemove','mousedown','touchstart','click'].forEach(function(name){
    playerBox.addEventListener(name, function(){ send({type:'touch'}); });
  });
  // keep the auto-hide deadline honest without user input
  var hideTimer = setInterval(function(){
    fetch('/api/player/sessions/' + sessionId)
      .then(function(r){ return r.json(); }).then(apply).catch(function(){});
  }, 1000);
  window.addEventListener('beforeunload', function(){ clearInterval(hideTimer); });

  document.querySelectorAll('.quality').forEach(function(btn){
    btn.addEventListener('click', function(){
      var url = btn.getAttribute('data-url');
      send({type:'source', url: url}).then(function(){
        generation += 1;
        video.src = url;
        document.querySelectorAll('.quality').forEach(function(b){ b.classList.remove('on'); });
        btn.classList.add('on');
      });
    });
  });
})();
</script>
{{end}}
{{end}}`

const adminTpl = `{{define "content"}}
<h1>Admin</h1>

{{if .Notice}}<div class="card" style="border-color:#166534">{{.Notice}}</div>{{end}}
{{if .AuthErr}}<div class="error-box">{{.AuthErr}}</div>{{end}}
{{if .FormErr}}<div class="error-box">{{.FormErr}}</div>{{end}}

<div class="card" style="margin-top:16px">
  <h2>Konfigurasi Situs</h2>
  <form method="post" action="/admin/config">
    <p><label>Password Admin<br /><input type="password" name="password" placeholder="Masukkan password admin" required /></label></p>
    <p><label>URL Samehadaku<br /><input type="url" name="samehadakuUrl" value="{{.Config.SamehadakuURL}}" style="width:100%" /></label><br />
    <span class="muted">URL website samehadaku yang akan di-scrape</span></p>
    <p><label><input type="checkbox" name="enableAds" value="true" {{if .Config.EnableAds}}checked{{end}} /> Aktifkan Iklan</label></p>
    <p><label>Iklan Header<br /><input name="headerAd" value="{{.Config.AdsConfig.HeaderAd}}" style="width:100%" /></label></p>
    <p><label>Iklan Sidebar<br /><input name="sidebarAd" value="{{.Config.AdsConfig.SidebarAd}}" style="width:100%" /></label></p>
    <p><label>Iklan Video<br /><input name="videoAd" value="{{.Config.AdsConfig.VideoAd}}" style="width:100%" /></label></p>
    <p><label>Autoplay
      <select name="autoplay">
        <option value="false" {{if not .Config.PlayerConfig.Autoplay}}selected{{end}}>Tidak</option>
        <option value="true" {{if .Config.PlayerConfig.Autoplay}}selected{{end}}>Ya</option>
      </select></label>
    <label>Kualitas Default
      <select name="quality">
        <option value="auto" {{if eq .Config.PlayerConfig.Quality "auto"}}selected{{end}}>Auto</option>
        <option value="1080p" {{if eq .Config.PlayerConfig.Quality "1080p"}}selected{{end}}>1080p</option>
        <option value="720p" {{if eq .Config.PlayerConfig.Quality "720p"}}selected{{end}}>720p</option>
        <option value="480p" {{if eq .Config.PlayerConfig.Quality "480p"}}selected{{end}}>480p</option>
        <option value="360p" {{if eq .Config.PlayerConfig.Quality "360p"}}selected{{end}}>360p</option>
      </select></label>
    <label>Subtitle
      <select name="subtitle">
        <option value="true" {{if .Config.PlayerConfig.Subtitle}}selected{{end}}>Aktif</option>
        <option value="false" {{if not .Config.PlayerConfig.Subtitle}}selected{{end}}>Nonaktif</option>
      </select></label></p>
    <button class="btn" type="submit">Simpan Konfigurasi</button>
  </form>
</div>

<div class="card" style="margin-top:16px">
  <h2>Scraping</h2>
  <p class="muted">Status: <span id="scrape-status">{{.Status.Status}}</span> &middot; <span id="scrape-progress">{{.Status.Progress}}</span>%</p>
  <div class="progress"><div id="scrape-bar" style="width:{{.Status.Progress}}%"></div></div>
  <p class="muted" id="scrape-message">{{.Status.Message}}</p>
  <form method="post" action="/admin/scrape">
    <p><label>Password Admin<br /><input type="password" name="password" placeholder="Masukkan password admin" required /></label></p>
    <p>
      <button class="btn" type="submit" name="job" value="full">Scrape Semua</button>
      <button class="btn secondary" type="submit" name="job" value="latest">Scrape Episode Terbaru</button>
      <button class="btn secondary" type="submit" name="job" value="list">Scrape Daftar Anime</button>
    </p>
    <p><label>Halaman Awal <input type="number" name="startPage" min="1" style="width:80px" /></label>
    <label>Halaman Akhir <input type="number" name="endPage" min="1" style="width:80px" /></label>
    <button class="btn secondary" type="submit" name="job" value="batch">Scrape Batch</button></p>
  </form>
</div>

<script>
(function(){
  var timer = setInterval(function(){
    fetch('/api/scraping-status').then(function(r){ return r.json(); }).then(function(body){
      var st = (body && body.data) || body || {};
      document.getElementById('scrape-status').textContent = st.status || 'idle';
      document.getElementById('scrape-progress').textContent = st.progress || 0;
      document.getElementById('scrape-bar').style.width = (st.progress || 0) + '%';
      if (st.message) document.getElementById('scrape-message').textContent = st.message;
      if (st.status === 'completed' || st.status === 'error') clearInterval(timer);
    }).catch(function(){});
  }, 2000);
  window.addEventListener('beforeunload', function(){ clearInterval(timer); });
})();
</script>
{{end}}`
