package engine

// updateEphemeral moves particles and floating text by one frame.
func (w *world) updateEphemeral() {
	for _, p := range w.particles {
		p.Update()
	}
	for i := range w.texts {
		w.texts[i].Update()
	}
}

// pruneEphemeral drops decayed particles and text. Particles go back to the pool.
func (w *world) pruneEphemeral() {
	kept := w.particles[:0]
	for _, p := range w.particles {
		if p.Expired() {
			p.Release()
			continue
		}
		kept = append(kept, p)
	}
	clear(w.particles[len(kept):])
	w.particles = kept

	keptText := w.texts[:0]
	for _, t := range w.texts {
		if !t.Expired() {
			keptText = append(keptText, t)
		}
	}
	w.texts = keptText
}

// advanceProjectiles moves bullets and power-ups and drops those that left
// the playfield.
func (w *world) advanceProjectiles(height float64) {
	kept := w.playerBullets[:0]
	for _, b := range w.playerBullets {
		b.Update()
		if !b.OutOfBounds(height) {
			kept = append(kept, b)
		}
	}
	w.playerBullets = kept

	kept = w.invaderBullets[:0]
	for _, b := range w.invaderBullets {
		b.Update()
		if !b.OutOfBounds(height) {
			kept = append(kept, b)
		}
	}
	w.invaderBullets = kept

	keptPU := w.powerUps[:0]
	for _, pu := range w.powerUps {
		pu.Update()
		if pu.Y <= height {
			keptPU = append(keptPU, pu)
		}
	}
	w.powerUps = keptPU
}
