package browser

import (
	"encoding/json"
	"fmt"

	"github.com/sculpt-dev/sculpt/pkg/types"
)

// applyScript is the JavaScript injected into the previewed page. It takes
// the serialized change list and replays each change against the live DOM,
// mirroring the server-side apply semantics: all matches are touched, zero
// matches is a silent skip, unknown types are ignored.
const applyScript = `(payload) => {
	const changes = JSON.parse(payload);
	const positions = {
		before: 'beforebegin',
		after: 'afterend',
		firstChild: 'afterbegin',
		lastChild: 'beforeend',
	};
	let applied = 0;
	for (const c of changes) {
		let targets;
		try {
			targets = document.querySelectorAll(c.selector);
		} catch (e) {
			continue;
		}
		if (targets.length === 0 && c.type !== 'insert') {
			continue;
		}
		switch (c.type) {
		case 'text':
			targets.forEach((el) => { el.textContent = c.value; });
			applied++;
			break;
		case 'html':
			targets.forEach((el) => { el.innerHTML = c.value; });
			applied++;
			break;
		case 'style':
		case 'resize':
			targets.forEach((el) => {
				if (c.mode === 'replace') {
					el.removeAttribute('style');
				}
				for (const [prop, v] of Object.entries(c.value)) {
					if (v === '') {
						el.style.removeProperty(prop);
					} else {
						el.style.setProperty(prop, v);
					}
				}
			});
			applied++;
			break;
		case 'attribute':
			targets.forEach((el) => {
				for (const [name, v] of Object.entries(c.value)) {
					el.setAttribute(name, v);
				}
			});
			applied++;
			break;
		case 'class':
			targets.forEach((el) => {
				(c.value.add || []).forEach((name) => el.classList.add(name));
				(c.value.remove || []).forEach((name) => el.classList.remove(name));
			});
			applied++;
			break;
		case 'move': {
			const dest = document.querySelector(c.value.targetSelector);
			if (!dest) {
				break;
			}
			targets.forEach((el) => {
				dest.insertAdjacentElement(positions[c.value.position] || 'beforeend', el);
			});
			applied++;
			break;
		}
		case 'insert': {
			if (targets.length > 0) {
				break;
			}
			const dest = document.querySelector(c.value.targetSelector);
			if (!dest) {
				break;
			}
			dest.insertAdjacentHTML(positions[c.value.position] || 'beforeend', c.value.html);
			applied++;
			break;
		}
		case 'delete':
			targets.forEach((el) => el.remove());
			applied++;
			break;
		}
	}
	return applied;
}`

// encodeChanges serializes the enabled subset of a change list for the
// injected script.
func encodeChanges(changes []types.Change) (string, error) {
	enabled := make([]types.Change, 0, len(changes))
	for _, c := range changes {
		if c.Enabled {
			enabled = append(enabled, c)
		}
	}
	payload, err := json.Marshal(enabled)
	if err != nil {
		return "", fmt.Errorf("failed to encode changes: %w", err)
	}
	return string(payload), nil
}
