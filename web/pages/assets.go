package pages

// timelineCSS is the full stylesheet, inlined so the page is a single response.
const timelineCSS = `
:root {
  --bg: #10141c;
  --card: #1a2230;
  --ink: #e8edf5;
  --muted: #8a94a6;
  --accent: #4f8cff;
  --danger: #e05b5b;
  --line: #2a3446;
}
* { box-sizing: border-box; }
body {
  margin: 0;
  padding: 16px;
  background: var(--bg);
  color: var(--ink);
  font: 15px/1.5 system-ui, sans-serif;
  max-width: 860px;
  margin-inline: auto;
}
.topbar { display: flex; align-items: baseline; justify-content: space-between; flex-wrap: wrap; }
.topbar h1 { margin: 0 0 8px; font-size: 1.6rem; }
.stats { display: flex; gap: 12px; color: var(--muted); font-size: 0.85rem; }
.danger { color: var(--danger); }
.card {
  background: var(--card);
  border: 1px solid var(--line);
  border-radius: 10px;
  padding: 14px;
  margin-bottom: 14px;
}
.form-row { display: flex; gap: 10px; align-items: center; margin-bottom: 8px; }
.form-row label { width: 80px; color: var(--muted); }
.form-row input, .form-row textarea {
  flex: 1;
  background: var(--bg);
  color: var(--ink);
  border: 1px solid var(--line);
  border-radius: 6px;
  padding: 6px 8px;
}
.form-actions { display: flex; gap: 8px; margin-top: 8px; }
.btn {
  background: var(--line);
  color: var(--ink);
  border: none;
  border-radius: 6px;
  padding: 6px 14px;
  cursor: pointer;
  text-decoration: none;
  font-size: 0.9rem;
}
.btn-primary { background: var(--accent); }
.btn-danger { background: var(--danger); }
.help { color: var(--muted); font-size: 0.85rem; min-height: 1.2em; }
.controls { display: flex; gap: 16px; align-items: center; flex-wrap: wrap; }
.control-group { display: flex; gap: 8px; align-items: center; }
.actions { margin-left: auto; }
.chips { display: flex; gap: 6px; flex-wrap: wrap; }
.pill {
  border: 1px solid var(--line);
  border-radius: 999px;
  padding: 2px 10px;
  font-size: 0.8rem;
  cursor: pointer;
}
.chip {
  border: 1px solid var(--line);
  border-radius: 999px;
  padding: 1px 8px;
  font-size: 0.75rem;
  color: var(--muted);
}
.empty-state { text-align: center; color: var(--muted); padding: 40px; }
.timeline { position: relative; margin-left: 70px; border-left: 2px solid var(--line); }
.year-tick { position: absolute; left: -6px; width: 10px; height: 2px; background: var(--line); }
.year-label { position: absolute; left: -60px; color: var(--muted); font-size: 0.8rem; transform: translateY(-50%); }
.now-marker {
  position: absolute;
  left: -8px;
  color: var(--accent);
  font-size: 0.75rem;
  border-top: 1px dashed var(--accent);
  width: 100%;
  padding-left: 12px;
}
.event { position: absolute; left: 0; width: 100%; }
.dot {
  position: absolute;
  left: -7px;
  top: 4px;
  width: 12px;
  height: 12px;
  border-radius: 50%;
  background: var(--accent);
  border: 2px solid var(--line);
}
.event-card {
  margin-left: 20px;
  max-width: 520px;
  border-left: 3px solid var(--accent);
  cursor: pointer;
}
.event-title { font-weight: 600; }
.event-date { color: var(--muted); font-size: 0.8rem; }
.event-notes { margin-top: 6px; font-size: 0.9rem; white-space: pre-wrap; }
.figure img { max-width: 100%; border-radius: 6px; margin-top: 6px; }
`

// timelineJS drives the page: every action calls the JSON API then reloads,
// so the server-rendered layout stays the single source of truth.
const timelineJS = `
function setStatus(msg, isError) {
  const el = document.getElementById('status');
  el.textContent = msg || '';
  el.className = isError ? 'help danger' : 'help';
}

async function call(method, path, body) {
  const res = await fetch(path, {
    method: method,
    headers: { 'Content-Type': 'application/json' },
    body: body === undefined ? undefined : JSON.stringify(body)
  });
  const data = await res.json().catch(() => ({ error: 'bad response' }));
  if (!res.ok || data.error) {
    throw new Error(data.error || ('request failed (' + res.status + ')'));
  }
  return data;
}

async function saveEvent(e) {
  e.preventDefault();
  const fileInput = document.getElementById('image');
  const payload = {
    id: document.getElementById('eventId').value,
    dateISO: document.getElementById('date').value,
    title: document.getElementById('title').value,
    category: document.getElementById('category').value,
    notes: document.getElementById('notes').value
  };
  try {
    if (fileInput.files.length > 0) {
      payload.image = await readAsDataURL(fileInput.files[0]);
    }
    const saved = await call('POST', '/api/v1/events', payload);
    sessionStorage.setItem('anchorDate', saved.data.dateISO);
    location.reload();
  } catch (err) {
    setStatus(err.message, true);
  }
  return false;
}

function readAsDataURL(file) {
  return new Promise((resolve, reject) => {
    const reader = new FileReader();
    reader.onload = () => resolve(reader.result);
    reader.onerror = () => reject(new Error('could not read file'));
    reader.readAsDataURL(file);
  });
}

async function editEvent(id) {
  try {
    const data = await call('GET', '/api/v1/events/' + id);
    const ev = data.data;
    document.getElementById('eventId').value = ev.id;
    document.getElementById('date').value = ev.dateISO;
    document.getElementById('title').value = ev.title;
    document.getElementById('category').value = ev.category || '';
    document.getElementById('notes').value = ev.notes || '';
    setStatus('Editing "' + ev.title + '"');
    window.scrollTo({ top: 0, behavior: 'smooth' });
  } catch (err) {
    setStatus(err.message, true);
  }
}

function clearForm() {
  document.getElementById('eventForm').reset();
  document.getElementById('eventId').value = '';
  setStatus('');
}

async function deleteEvent() {
  const id = document.getElementById('eventId').value;
  if (!id) { setStatus('Pick an event first', true); return; }
  if (!confirm('Delete this event?')) { return; }
  try {
    await call('DELETE', '/api/v1/events/' + id);
    location.reload();
  } catch (err) {
    setStatus(err.message, true);
  }
}

async function setZoom(value) {
  try {
    await call('PUT', '/api/v1/prefs', { zoom: Number(value) });
    location.reload();
  } catch (err) {
    setStatus(err.message, true);
  }
}

async function setQuery(value) {
  try {
    await call('PUT', '/api/v1/prefs', { query: value });
    location.reload();
  } catch (err) {
    setStatus(err.message, true);
  }
}

async function toggleCategory(cat) {
  try {
    const data = await call('GET', '/api/v1/prefs');
    const current = data.data.filterCategory;
    await call('PUT', '/api/v1/prefs', { filterCategory: current === cat ? '' : cat });
    location.reload();
  } catch (err) {
    setStatus(err.message, true);
  }
}

async function syncNow() {
  try {
    setStatus('Syncing...');
    await call('POST', '/api/v1/sync', {});
    location.reload();
  } catch (err) {
    setStatus('Sync failed: ' + err.message, true);
  }
}

function importFile(input) {
  if (input.files.length === 0) { return; }
  const reader = new FileReader();
  reader.onload = async () => {
    try {
      await call('POST', '/api/v1/import', JSON.parse(reader.result));
      location.reload();
    } catch (err) {
      setStatus('Import failed: ' + err.message, true);
    }
  };
  reader.readAsText(input.files[0]);
}

// After a save-triggered reload, scroll the timeline to the saved event.
window.addEventListener('DOMContentLoaded', async () => {
  const anchorDate = sessionStorage.getItem('anchorDate');
  if (!anchorDate) { return; }
  sessionStorage.removeItem('anchorDate');
  try {
    const data = await call('GET', '/api/v1/timeline?anchor=' + encodeURIComponent(anchorDate));
    const timeline = document.getElementById('timeline');
    if (timeline && data.data.anchorY !== undefined) {
      window.scrollTo({ top: timeline.offsetTop + data.data.anchorY - 120, behavior: 'smooth' });
    }
  } catch (err) {
    // Scrolling is best effort
  }
});

async function resetAll() {
  if (!confirm('Delete every event? This cannot be undone.')) { return; }
  try {
    await call('POST', '/api/v1/reset', {});
    location.reload();
  } catch (err) {
    setStatus(err.message, true);
  }
}
`
