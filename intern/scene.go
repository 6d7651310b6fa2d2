package intern

import "github.com/The-OpenROAD-Project/OpenSTA-sub003/liberty"

// sceneKey is a (mode, scene) pair spec §3 makes a first-class tagging
// dimension alongside RF: MinMax is "mode", Corner is "scene". Tag and
// ClkInfo both carry a Corner field so two arrivals at the same pin under
// different corners never collapse into the same interned entry; this key
// is only used to count how many distinct pairs have been registered.
type sceneKey struct {
	MinMax liberty.MinMax
	Corner liberty.Corner
}

// registerScene counts mm/corner as used, enforcing
// staconfig.Config.MaxSceneCount (spec §7) the first time a given pair is
// seen. Called from InternTag and InternClkInfo before allocating, so the
// ceiling is enforced regardless of which table first encounters a new
// corner.
func (in *Interner) registerScene(mm liberty.MinMax, corner liberty.Corner) error {
	in.sceneMu.Lock()
	defer in.sceneMu.Unlock()
	k := sceneKey{MinMax: mm, Corner: corner}
	if in.scenes[k] {
		return nil
	}
	if err := in.capacityCheck("scene", int64(len(in.scenes)+1), in.cfg.MaxSceneCount); err != nil {
		return err
	}
	if in.scenes == nil {
		in.scenes = make(map[sceneKey]bool)
	}
	in.scenes[k] = true
	return nil
}
