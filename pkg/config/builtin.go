package config

// Built-in patch set: the sensor key parser fix for network-interceptor.js.
// Used when no config file is present, so running patchrc in a directory
// containing the interceptor reproduces the original one-shot fix.

// The exact block the broken interceptor contains. Matching is literal,
// trailing whitespace included.
const oldSensorLogic = `  // Look for sensor keys (slabwgt, slabvwc, etc.)
  if (nodeData.length === 0) {
    console.log('⚠️  [NETWORK] Node data array is empty');
    return null;
  }
  
  const firstEntry = nodeData[0];
  const sensorKeys = Object.keys(firstEntry).filter(k => 
    k.toLowerCase().includes('slab') || 
    k.toLowerCase().includes('wgt') || 
    k.toLowerCase().includes('vwc')
  );`

const newSensorLogic = `  // Look for sensor keys (slabwgt, slabvwc, etc.)
  if (nodeData.length === 0) {
    console.log('⚠️  [NETWORK] Node data array is empty');
    return null;
  }
  
  // Find first non-empty entry (skip empty objects at the start)
  let firstEntry = null;
  for (let i = 0; i < Math.min(10, nodeData.length); i++) {
    if (nodeData[i] && Object.keys(nodeData[i]).length > 1) { // More than just "timestamp"
      firstEntry = nodeData[i];
      if (i > 0) {
        console.log(` + "`" + `   → Skipped ${i} empty entries, using entry [${i}]` + "`" + `);
      }
      break;
    }
  }
  
  if (!firstEntry) {
    console.log('⚠️  [NETWORK] All entries are empty');
    return null;
  }
  
  // Look for sensor keys with flexible pattern matching (handles suffixes like "_1", "_2")
  const sensorKeys = Object.keys(firstEntry).filter(k => {
    const lower = k.toLowerCase();
    return (lower.includes('slabwgt') || 
            lower.includes('slabvwc') || 
            lower.includes('calslabvwc')) && 
           k !== 'timestamp';
  });`

// 🏭 Default returns the built-in patch set
func Default() *Config {
	cfg := &Config{
		Dir: ".",
		PatchDefs: []PatchDefinition{
			{
				Name:        "sensor-key-parser",
				Summary:     "Sensor key parser now handles",
				File:        "network-interceptor.js",
				Pattern:     oldSensorLogic,
				Replacement: newSensorLogic,
				Notes: []string{
					"Empty objects at the start of array",
					"Dynamic suffixes (slabwgt_1, slabwgt_2, etc.)",
					"Both slabwgt and calslabvwc keys",
				},
			},
		},
	}
	return cfg
}
