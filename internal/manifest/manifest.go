// Package manifest declares the static MOT20 artifact tables: which remote
// artifacts the pipeline fetches and where each one lands on disk.
package manifest

import "path/filepath"

// Kind selects the transfer strategy for an artifact.
type Kind string

const (
	// DirectURL is a one-shot HTTP fetch.
	DirectURL Kind = "url"
	// ResumableArchive is an HTTP fetch that continues a partial download
	// from its current length.
	ResumableArchive Kind = "archive"
	// KeyedID addresses an object in cloud storage by an opaque key.
	KeyedID Kind = "keyed"
)

// Artifact is one remote artifact and its destination path.
type Artifact struct {
	Key  string // logical name, e.g. "MOT20-01/byte065"
	Dest string // destination path on disk
	Kind Kind
	Ref  string // URL or storage object key, stable and opaque
}

// DatasetURL is the public location of the MOT20 dataset archive.
const DatasetURL = "https://motchallenge.net/data/MOT20.zip"

// Detection file classes fetched per sequence. byte065 is the ByteTrack
// detector output at score threshold 0.65; aplift is the public detector
// family consumed by the lifted solver.
var detClasses = []string{"byte065", "aplift"}

// TrainSequences lists the MOT20 training sequences in declaration order.
var TrainSequences = []string{"MOT20-01", "MOT20-02", "MOT20-03", "MOT20-05"}

// TestSequences lists the MOT20 test sequences in declaration order.
var TestSequences = []string{"MOT20-04", "MOT20-06", "MOT20-07", "MOT20-08"}

// MOT20Dir returns the dataset directory under the data root.
func MOT20Dir(root string) string {
	return filepath.Join(root, "MOT20")
}

// DatasetArchive returns the resumable archive artifact for the dataset.
func DatasetArchive(root string) Artifact {
	return Artifact{
		Key:  "MOT20.zip",
		Dest: filepath.Join(root, "MOT20.zip"),
		Kind: ResumableArchive,
		Ref:  DatasetURL,
	}
}

// DetectionArtifacts returns every per-sequence detection artifact, train
// split first, in sequence declaration order. Each sequence carries one
// artifact per detection class under <root>/MOT20/<split>/<seq>/det/.
func DetectionArtifacts(root string) []Artifact {
	var arts []Artifact
	add := func(split string, seqs []string) {
		for _, seq := range seqs {
			for _, class := range detClasses {
				arts = append(arts, Artifact{
					Key:  seq + "/" + class,
					Dest: filepath.Join(MOT20Dir(root), split, seq, "det", class+".txt"),
					Kind: KeyedID,
					Ref:  "det/" + split + "/" + seq + "/" + class + ".txt",
				})
			}
		}
	}
	add("train", TrainSequences)
	add("test", TestSequences)
	return arts
}

// ModelArtifacts returns the pretrained model and Re-ID weight artifacts
// placed under <root>/models/.
func ModelArtifacts(root string) []Artifact {
	models := filepath.Join(root, "models")
	return []Artifact{
		{
			Key:  "reid-weights",
			Dest: filepath.Join(models, "resnet50_reid.pth"),
			Kind: KeyedID,
			Ref:  "models/resnet50_reid.pth",
		},
		{
			Key:  "pretrained-mot20",
			Dest: filepath.Join(models, "lifted_mot20.pth"),
			Kind: KeyedID,
			Ref:  "models/lifted_mot20.pth",
		},
	}
}

// Seqmap is one split manifest: a named list of sequences.
type Seqmap struct {
	Path    string
	Members []string
}

// Seqmaps returns the four split manifests written under
// <root>/MOT20/seqmaps/. The validation maps each hold out exactly one
// sequence from their split.
func Seqmaps(root string) []Seqmap {
	dir := filepath.Join(MOT20Dir(root), "seqmaps")
	return []Seqmap{
		{Path: filepath.Join(dir, "mot20-train-all.txt"), Members: TrainSequences},
		{Path: filepath.Join(dir, "mot20-test-all.txt"), Members: TestSequences},
		{Path: filepath.Join(dir, "mot20-train-val.txt"), Members: []string{"MOT20-05"}},
		{Path: filepath.Join(dir, "mot20-test-val.txt"), Members: []string{"MOT20-08"}},
	}
}
